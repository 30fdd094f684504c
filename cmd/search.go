/*
Copyright © 2026 tidytask contributors
*/
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tidytask/tidytask/internal/ui"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search tasks by keyword",
	Long: `Search task titles and descriptions for a keyword,
case-insensitively.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	keyword := strings.Join(args, " ")

	matches, err := GetService().Search(keyword)
	if err != nil {
		return reportError(err)
	}

	if len(matches) == 0 {
		fmt.Println(ui.StyleSubtle.Render(fmt.Sprintf("No tasks matching %q.", keyword)))
		return nil
	}
	fmt.Print(ui.TaskTable(matches, time.Now()))
	return nil
}
