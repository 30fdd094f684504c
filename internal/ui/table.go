package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tidytask/tidytask/internal/dateparse"
	"github.com/tidytask/tidytask/models"
)

// Table renders data in a compact markdown-style table format, optimized for
// terminal display with fixed-width columns.
type Table struct {
	Headers  []string
	Rows     [][]string
	MaxWidth int // Max width per column (0 = auto)
	// CellStyle optionally picks a style per cell from the column index and
	// raw value; nil means the default text style.
	CellStyle func(col int, value string) lipgloss.Style
}

// ColumnWidths calculates optimal column widths based on content.
func (t *Table) ColumnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	if t.MaxWidth > 0 {
		for i := range widths {
			if widths[i] > t.MaxWidth {
				widths[i] = t.MaxWidth
			}
		}
	}
	return widths
}

// Render outputs the table to a string.
func (t *Table) Render() string {
	if len(t.Headers) == 0 {
		return ""
	}

	widths := t.ColumnWidths()
	var sb strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(ColorSecondary)

	var headerCells []string
	for i, h := range t.Headers {
		headerCells = append(headerCells, headerStyle.Render(padRight(h, widths[i])))
	}
	sb.WriteString(" " + strings.Join(headerCells, "  ") + "\n")

	var sepParts []string
	for _, w := range widths {
		sepParts = append(sepParts, dimStyle.Render(strings.Repeat("─", w)))
	}
	sb.WriteString(" " + strings.Join(sepParts, "──") + "\n")

	for _, row := range t.Rows {
		var cells []string
		for i := range t.Headers {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			// Truncate if needed (guard against zero/small widths)
			if widths[i] >= 2 && len(val) > widths[i] {
				val = val[:widths[i]-1] + "…"
			} else if widths[i] == 1 && len(val) > 1 {
				val = "…"
			}
			style := StyleText
			if t.CellStyle != nil {
				style = t.CellStyle(i, val)
			}
			cells = append(cells, style.Render(padRight(val, widths[i])))
		}
		sb.WriteString(" " + strings.Join(cells, "  ") + "\n")
	}

	return sb.String()
}

// padRight pads a string to the specified width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// TaskTable renders a task list as a table.
func TaskTable(tasks []models.Task, now time.Time) string {
	table := &Table{
		Headers:  []string{"ID", "Title", "Priority", "Due", "Categories", "Status"},
		MaxWidth: 40,
		CellStyle: func(col int, value string) lipgloss.Style {
			if col == 2 {
				return PriorityStyle(models.TaskPriority(value))
			}
			return StyleText
		},
	}
	for _, t := range tasks {
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(t.ID, 10),
			t.Title,
			string(t.Priority),
			dueCell(t, now),
			strings.Join(t.Categories, " "),
			statusCell(t, now),
		})
	}
	return table.Render()
}

// ReminderLine renders one reminder notification.
func ReminderLine(r models.Reminder) string {
	remaining := r.TimeRemaining.Round(time.Minute)
	return fmt.Sprintf("%s Task %d %q due in %s (at %s)",
		StyleWarning.Render("⏰"), r.TaskID, r.TaskTitle, remaining, r.DueAt.Format("15:04"))
}

func dueCell(t models.Task, now time.Time) string {
	if t.DueAt == nil {
		return "-"
	}
	return dateparse.FormatRelative(*t.DueAt, now)
}

func statusCell(t models.Task, now time.Time) string {
	switch {
	case t.Completed:
		return "done"
	case t.IsOverdue(now):
		return "overdue"
	}
	return "pending"
}
