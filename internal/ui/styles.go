package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tidytask/tidytask/models"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray

	// Base Styles
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	// Priority accents for list output
	StyleHigh   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleMedium = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleLow    = lipgloss.NewStyle().Foreground(ColorSecondary)
)

// PriorityStyle returns the accent style for a priority level.
func PriorityStyle(p models.TaskPriority) lipgloss.Style {
	switch p {
	case models.PriorityHigh:
		return StyleHigh
	case models.PriorityLow:
		return StyleLow
	}
	return StyleMedium
}
