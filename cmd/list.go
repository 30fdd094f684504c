/*
Copyright © 2026 tidytask contributors
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tidytask/tidytask/internal/task"
	"github.com/tidytask/tidytask/internal/ui"
	"github.com/tidytask/tidytask/models"
)

var (
	listStatus   string
	listPriority string
	listCategory string
	listSort     string
	listReverse  bool
	listDueIn    int
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks, optionally filtered by status, priority or category and
ordered by a sort key. Filters are combined with AND; without a sort key the
insertion order is kept.

  tidytask list --status pending --priority high
  tidytask list --category work --sort due_date
  tidytask list --due-in 7`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listStatus, "status", "all", "filter by status: all, pending or completed")
	listCmd.Flags().StringVar(&listPriority, "priority", "", "filter by priority: high, medium or low")
	listCmd.Flags().StringVar(&listCategory, "category", "", "filter by category tag")
	listCmd.Flags().StringVar(&listSort, "sort", "", "sort by: due_date, priority, created_at or title")
	listCmd.Flags().BoolVar(&listReverse, "reverse", false, "reverse the sort order")
	listCmd.Flags().IntVar(&listDueIn, "due-in", 0, "only incomplete tasks due within N days")
}

func runList(cmd *cobra.Command, args []string) error {
	svc := GetService()
	now := time.Now()

	result, err := svc.Filter(task.FilterParams{
		Status:   task.StatusFilter(listStatus),
		Priority: listPriority,
		Category: listCategory,
	})
	if err != nil {
		return reportError(err)
	}

	if listDueIn > 0 {
		horizon := time.Duration(listDueIn) * 24 * time.Hour
		upcoming, err := svc.Upcoming(now, horizon)
		if err != nil {
			return reportError(err)
		}
		result = intersectByID(result, upcoming)
	}

	if listSort != "" {
		key, ok := task.ParseSortKey(listSort)
		if !ok {
			PrintError("Invalid sort key. Use due_date, priority, created_at or title.", nil)
			return fmt.Errorf("invalid sort key %q", listSort)
		}
		result, err = svc.SortTasks(result, key, listReverse)
		if err != nil {
			return reportError(err)
		}
	}

	if len(result) == 0 {
		fmt.Println(ui.StyleSubtle.Render("No tasks found."))
		return nil
	}
	fmt.Print(ui.TaskTable(result, now))
	return nil
}

// intersectByID keeps the tasks in base whose ids also appear in other,
// preserving base's order.
func intersectByID(base, other []models.Task) []models.Task {
	ids := make(map[int64]struct{}, len(other))
	for _, t := range other {
		ids[t.ID] = struct{}{}
	}
	out := make([]models.Task, 0, len(base))
	for _, t := range base {
		if _, ok := ids[t.ID]; ok {
			out = append(out, t)
		}
	}
	return out
}
