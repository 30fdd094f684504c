/*
Copyright © 2026 tidytask contributors
*/
package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tidytask/tidytask/internal/dateparse"
	"github.com/tidytask/tidytask/internal/ui"
	"github.com/tidytask/tidytask/types"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:   "done <task_id>",
	Short: "Toggle a task's completion",
	Long: `Toggle a task between pending and completed. Completing a recurring
task schedules its next occurrence automatically; running done again on the
same task flips it back to pending without side effects.`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	result, err := GetService().ToggleCompletion(id)
	if err != nil {
		return reportError(err)
	}

	if result.Task.Completed {
		fmt.Println(ui.StyleSuccess.Render(fmt.Sprintf("Completed task %d: %s", result.Task.ID, result.Task.Title)))
	} else {
		fmt.Printf("Task %d is pending again: %s\n", result.Task.ID, result.Task.Title)
	}
	if result.Next != nil {
		due := dateparse.FormatRelative(*result.Next.DueAt, time.Now())
		fmt.Println(ui.StyleSubtle.Render(fmt.Sprintf("Next occurrence created as task %d, due %s.", result.Next.ID, due)))
	}
	return nil
}

// parseTaskID converts a command argument to a positive task id.
func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		verr := types.NewValidationError("id", "must be a positive integer")
		PrintError(fmt.Sprintf("Invalid task ID %q. Must be a positive integer.", arg), verr)
		return 0, verr
	}
	return id, nil
}
