/*
Copyright © 2026 tidytask contributors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <task_id>",
	Short: "Delete a task",
	Long: `Delete a task permanently by its ID. Deleting a recurring task never
schedules another occurrence.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	if err := GetService().DeleteTask(id); err != nil {
		return reportError(err)
	}
	fmt.Printf("Task %d deleted.\n", id)
	return nil
}
