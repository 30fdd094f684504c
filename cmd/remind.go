/*
Copyright © 2026 tidytask contributors
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/tidytask/tidytask/internal/reminder"
	"github.com/tidytask/tidytask/internal/ui"
	"github.com/tidytask/tidytask/models"
)

var remindWatch bool

// remindCmd represents the remind command
var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Show tasks due soon",
	Long: `Show reminders for incomplete tasks due within the reminder window
(1 hour by default, see reminder.window in the config).

With --watch the reminder engine keeps polling and prints each reminder once
as its task enters the window, until interrupted.`,
	RunE: runRemind,
}

// overdueCmd represents the overdue command
var overdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "Show overdue tasks",
	Long:  `Show incomplete tasks whose due time has already passed.`,
	RunE:  runOverdue,
}

func init() {
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(overdueCmd)

	remindCmd.Flags().BoolVar(&remindWatch, "watch", false, "keep polling and print reminders as they fire")
}

func newEngine(notify reminder.NotifyFunc) *reminder.Engine {
	return reminder.NewEngine(GetService(), GetConfig().Reminder, notify)
}

func runRemind(cmd *cobra.Command, args []string) error {
	if remindWatch {
		return watchReminders()
	}

	engine := newEngine(nil)
	due, err := engine.DueReminders(time.Now(), 0)
	if err != nil {
		return reportError(err)
	}

	if len(due) == 0 {
		fmt.Println(ui.StyleSubtle.Render("Nothing due soon."))
		return nil
	}
	for _, r := range due {
		fmt.Println(ui.ReminderLine(r))
	}
	return nil
}

func watchReminders() error {
	engine := newEngine(func(r models.Reminder) {
		fmt.Println(ui.ReminderLine(r))
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	fmt.Println(ui.StyleSubtle.Render("Watching for due tasks. Press Ctrl-C to stop."))
	engine.Start(ctx)
	<-ctx.Done()
	engine.Stop()
	return nil
}

func runOverdue(cmd *cobra.Command, args []string) error {
	engine := newEngine(nil)
	now := time.Now()

	tasks, err := engine.Overdue(now)
	if err != nil {
		return reportError(err)
	}

	if len(tasks) == 0 {
		fmt.Println(ui.StyleSubtle.Render("Nothing overdue."))
		return nil
	}
	fmt.Print(ui.TaskTable(tasks, now))
	return nil
}
