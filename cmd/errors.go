/*
Copyright © 2026 tidytask contributors
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/tidytask/tidytask/internal/ui"
	"github.com/tidytask/tidytask/types"
)

// HandleFatalError handles unrecoverable errors that should terminate the
// application.
func HandleFatalError(userMsg string, technicalErr error) {
	PrintError(userMsg, technicalErr)
	os.Exit(1)
}

// PrintError prints an error message without exiting. By default the clean
// user-facing message is shown; with --verbose the underlying technical
// error is printed instead.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		fmt.Fprintln(os.Stderr, ui.StyleError.Render(fmt.Sprintf("Error: %v", technicalErr)))
	} else {
		fmt.Fprintln(os.Stderr, ui.StyleError.Render(userMsg))
	}
}

// LogError logs a debug message to stderr only in verbose mode.
func LogError(msg string, err error) {
	if !viper.GetBool("verbose") {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "[DEBUG] %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "[DEBUG] %s\n", msg)
	}
}

// friendlyError maps the core's typed errors onto user-facing messages so
// every command reports them the same way.
func friendlyError(err error) string {
	var ve *types.ValidationError
	if errors.As(err, &ve) {
		return fmt.Sprintf("Invalid %s: %s.", ve.Field, ve.Reason)
	}
	var nf *types.NotFoundError
	if errors.As(err, &nf) {
		return fmt.Sprintf("No such task: %d.", nf.ID)
	}
	if errors.Is(err, types.ErrTaskLimitReached) {
		return "Task limit reached; delete some tasks first."
	}
	return "Something went wrong."
}

// reportError prints err through the friendly mapping and returns it so RunE
// handlers can propagate a non-zero exit.
func reportError(err error) error {
	PrintError(friendlyError(err), err)
	return err
}
