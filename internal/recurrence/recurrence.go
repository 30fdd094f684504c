// Package recurrence computes the follow-up occurrence of repeating tasks.
package recurrence

import (
	"fmt"
	"time"

	"github.com/tidytask/tidytask/models"
	"github.com/tidytask/tidytask/types"
)

// NextDueDate returns the due time of the occurrence after due for the given
// pattern.
//
// MONTHLY keeps the day of month and clamps to the last valid day when the
// target month is shorter (Jan 31 -> Feb 28, or Feb 29 in a leap year).
// Patterns are validated at task-creation time, so an unknown pattern here is
// a programming defect and reports types.ErrInvalidPattern.
func NextDueDate(due time.Time, pattern models.RecurrencePattern) (time.Time, error) {
	switch pattern {
	case models.RecurrenceDaily:
		return due.AddDate(0, 0, 1), nil
	case models.RecurrenceWeekly:
		return due.AddDate(0, 0, 7), nil
	case models.RecurrenceMonthly:
		return addMonthClamped(due), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", types.ErrInvalidPattern, pattern)
}

// addMonthClamped advances t by one calendar month without the day-overflow
// normalization of AddDate (which would turn Jan 31 into Mar 3).
func addMonthClamped(t time.Time) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	if last := daysIn(month+1, year); day > last {
		day = last
	}
	return time.Date(year, month+1, day, hour, min, sec, t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in month m of year y. Month values
// outside [1,12] are normalized the same way time.Date normalizes them.
func daysIn(m time.Month, y int) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NextInstance builds the next occurrence of a just-completed recurring task.
// It copies title, description, priority, categories and recurrence, advances
// the due time, and resets completion. The result carries no id or
// timestamps; the store assigns those on insert.
//
// A task without both a recurrence pattern and a due time never reaches this
// point: creation-time validation rejects recurrence without a due date.
func NextInstance(completed models.Task) (models.Task, error) {
	if completed.Recurrence == nil || completed.DueAt == nil {
		return models.Task{}, fmt.Errorf("%w: task %d lacks recurrence or due time", types.ErrInvalidPattern, completed.ID)
	}

	nextDue, err := NextDueDate(*completed.DueAt, *completed.Recurrence)
	if err != nil {
		return models.Task{}, err
	}

	next := completed.Clone()
	next.ID = 0
	next.Completed = false
	next.DueAt = &nextDue
	next.CreatedAt = time.Time{}
	next.UpdatedAt = time.Time{}
	return next, nil
}
