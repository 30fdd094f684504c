/*
Copyright © 2026 tidytask contributors
*/
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/tidytask/tidytask/internal/reminder"
	"github.com/tidytask/tidytask/internal/task"
	"github.com/tidytask/tidytask/types"
)

const (
	configName = ".tidytask"
	envPrefix  = "TIDYTASK"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate caches struct info across config validations.
var validate = validator.New()

// InitConfig reads in the config file and environment variables, applies
// defaults, and unmarshals into GlobalAppConfig.
func InitConfig() {
	viper.SetEnvPrefix(envPrefix) // e.g. TIDYTASK_VERBOSE
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("tasks.maxCount", task.DefaultMaxTasks)
	viper.SetDefault("reminder.pollInterval", reminder.DefaultPollInterval)
	viper.SetDefault("reminder.window", reminder.DefaultWindow)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// Missing config is fine; everything has a default.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: could not read config: %v\n", err)
		}
	}

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		HandleFatalError("Invalid configuration.", err)
	}
	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		HandleFatalError("Invalid configuration values.", err)
	}
}

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(config *types.AppConfig) error {
	if err := validate.Struct(config); err != nil {
		return err
	}
	if config.Reminder.PollInterval < time.Second {
		return fmt.Errorf("reminder.pollInterval must be at least 1s, got %s", config.Reminder.PollInterval)
	}
	if config.Reminder.Window <= 0 {
		return fmt.Errorf("reminder.window must be positive, got %s", config.Reminder.Window)
	}
	return nil
}

// GetConfig returns the loaded application configuration.
func GetConfig() types.AppConfig {
	return GlobalAppConfig
}
