/*
Copyright © 2026 tidytask contributors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidytask/tidytask/internal/task"
	"github.com/tidytask/tidytask/internal/ui"
)

var (
	updateTitle       string
	updateDescription string
	updatePriority    string
	updateCategories  []string
	updateDue         string
	updateClearDue    bool
	updateRecurrence  string
	updateClearRecur  bool
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update <task_id>",
	Short: "Update fields of a task",
	Long: `Update one or more fields of a task. Only the flags you pass are
changed; everything else keeps its value.

  tidytask update 3 --title "Pay rent (September)"
  tidytask update 3 --due "next friday" --priority high
  tidytask update 3 --clear-due --clear-recur`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVarP(&updateDescription, "desc", "d", "", "new description")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "new priority: high, medium or low")
	updateCmd.Flags().StringArrayVar(&updateCategories, "category", nil, "replacement category tag (repeatable)")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "new due date")
	updateCmd.Flags().BoolVar(&updateClearDue, "clear-due", false, "remove the due date")
	updateCmd.Flags().StringVar(&updateRecurrence, "recur", "", "new recurrence: daily, weekly or monthly")
	updateCmd.Flags().BoolVar(&updateClearRecur, "clear-recur", false, "remove the recurrence")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	params := task.UpdateTaskParams{
		ClearDueAt:      updateClearDue,
		ClearRecurrence: updateClearRecur,
	}
	if cmd.Flags().Changed("title") {
		params.Title = &updateTitle
	}
	if cmd.Flags().Changed("desc") {
		params.Description = &updateDescription
	}
	if cmd.Flags().Changed("priority") {
		params.Priority = &updatePriority
	}
	if cmd.Flags().Changed("category") {
		params.Categories = updateCategories
		params.SetCategories = true
	}
	if cmd.Flags().Changed("due") {
		due, err := parseDueFlag(updateDue)
		if err != nil {
			PrintError(fmt.Sprintf("Could not understand due date %q.", updateDue), err)
			return err
		}
		params.DueAt = due
	}
	if cmd.Flags().Changed("recur") {
		params.Recurrence = &updateRecurrence
	}

	updated, err := GetService().UpdateTask(id, params)
	if err != nil {
		return reportError(err)
	}

	fmt.Println(ui.StyleSuccess.Render(fmt.Sprintf("Updated task %d: %s", updated.ID, updated.Title)))
	return nil
}
