/*
Copyright © 2026 tidytask contributors
*/
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tidytask/tidytask/internal/dateparse"
	"github.com/tidytask/tidytask/internal/task"
	"github.com/tidytask/tidytask/internal/ui"
)

var (
	addDescription string
	addPriority    string
	addCategories  []string
	addDue         string
	addRecurrence  string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Long: `Add a new task with an optional description, priority, categories,
due date and recurrence pattern.

Due dates accept absolute and natural-language forms:
  tidytask add "Pay rent" --due 2026-09-01
  tidytask add "Standup" --due "tomorrow" --recur daily
  tidytask add "Review PR" --due "in 3 hours" --priority high --category work`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDescription, "desc", "d", "", "task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "priority: high, medium or low (default medium)")
	addCmd.Flags().StringArrayVar(&addCategories, "category", nil, "category tag (repeatable)")
	addCmd.Flags().StringVar(&addDue, "due", "", "due date, e.g. '2026-09-01', 'tomorrow', 'next monday'")
	addCmd.Flags().StringVar(&addRecurrence, "recur", "", "recurrence: daily, weekly or monthly (requires --due)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")

	due, err := parseDueFlag(addDue)
	if err != nil {
		PrintError(fmt.Sprintf("Could not understand due date %q.", addDue), err)
		return err
	}

	created, err := GetService().CreateTask(task.CreateTaskParams{
		Title:       title,
		Description: addDescription,
		Priority:    addPriority,
		Categories:  addCategories,
		DueAt:       due,
		Recurrence:  addRecurrence,
	})
	if err != nil {
		return reportError(err)
	}

	fmt.Println(ui.StyleSuccess.Render(fmt.Sprintf("Created task %d: %s", created.ID, created.Title)))
	LogError(fmt.Sprintf("task created at %s", created.CreatedAt.Format(time.RFC3339)), nil)
	return nil
}

// parseDueFlag resolves the --due flag to an absolute time; an empty flag
// means no due date.
func parseDueFlag(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := dateparse.Parse(value, time.Now())
	if err != nil {
		return nil, err
	}
	return &t, nil
}
