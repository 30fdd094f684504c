package types

import "time"

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Verbose  bool           `mapstructure:"verbose"`
	Tasks    TasksConfig    `mapstructure:"tasks"`
	Reminder ReminderConfig `mapstructure:"reminder" validate:"required"`
}

// TasksConfig holds settings for the in-memory task collection.
type TasksConfig struct {
	// MaxCount caps how many tasks may be held at once. Zero selects the
	// default limit; a negative value disables the cap.
	MaxCount int `mapstructure:"maxCount"`
}

// ReminderConfig holds settings for the due-date reminder engine.
type ReminderConfig struct {
	// PollInterval is how often the engine rescans for tasks entering the
	// reminder window.
	PollInterval time.Duration `mapstructure:"pollInterval" validate:"required"`
	// Window is how far ahead of the due time a reminder fires.
	Window time.Duration `mapstructure:"window" validate:"required"`
}
