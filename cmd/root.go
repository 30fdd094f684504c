/*
Copyright © 2026 tidytask contributors
*/
package cmd

import (
	"os"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tidytask/tidytask/internal/task"
	"github.com/tidytask/tidytask/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "tidytask",
	Short:   "tidytask manages your tasks from the command line.",
	Version: version,
	Long: `tidytask is a single-process todo application: add, list, update,
complete and delete tasks, with priorities, categories, search, filtering,
recurring tasks and due-date reminders. All state lives in process memory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.tidytask.yaml or ./.tidytask.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

var (
	serviceOnce sync.Once
	service     *task.Service
)

// GetService returns the process-wide task service over a fresh in-memory
// store. The core keeps no persisted state; the collection lives for the
// lifetime of this process only.
func GetService() *task.Service {
	serviceOnce.Do(func() {
		cfg := GetConfig()
		service = task.NewService(store.NewMemoryTaskStore(), cfg.Tasks.MaxCount)
	})
	return service
}
