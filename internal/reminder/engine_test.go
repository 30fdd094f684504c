package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidytask/tidytask/models"
	"github.com/tidytask/tidytask/types"
)

var scanNow = time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

// staticSource is a mutable in-test task source; tests reshape its slice
// between scans to simulate edits, deletions, and completions.
type staticSource struct {
	tasks []models.Task
}

func (s *staticSource) List() ([]models.Task, error) {
	return append([]models.Task(nil), s.tasks...), nil
}

func (s *staticSource) Overdue(now time.Time) ([]models.Task, error) {
	out := make([]models.Task, 0)
	for _, t := range s.tasks {
		if t.IsOverdue(now) {
			out = append(out, t)
		}
	}
	return out, nil
}

func dueTask(id int64, title string, due time.Time) models.Task {
	return models.Task{ID: id, Title: title, Priority: models.PriorityMedium, DueAt: &due}
}

func newTestEngine(source TaskSource) *Engine {
	return NewEngine(source, types.ReminderConfig{Window: time.Hour, PollInterval: time.Minute}, nil)
}

func TestDueReminders_WindowBoundaries(t *testing.T) {
	source := &staticSource{}
	inWindow := dueTask(1, "in window", scanNow.Add(30*time.Minute))
	atEdge := dueTask(2, "exactly at window edge", scanNow.Add(time.Hour))
	beyond := dueTask(3, "beyond window", scanNow.Add(time.Hour+time.Second))
	dueNow := dueTask(4, "due exactly now", scanNow)
	past := dueTask(5, "already overdue", scanNow.Add(-time.Minute))
	completed := dueTask(6, "completed", scanNow.Add(10*time.Minute))
	completed.Completed = true
	source.tasks = []models.Task{
		inWindow, atEdge, beyond, dueNow, past, completed,
		{ID: 7, Title: "no due date"},
	}

	engine := newTestEngine(source)
	reminders, err := engine.DueReminders(scanNow, time.Hour)
	require.NoError(t, err)

	var ids []int64
	for _, r := range reminders {
		ids = append(ids, r.TaskID)
	}
	assert.Equal(t, []int64{1, 2}, ids,
		"only incomplete tasks with 0 < due-now <= window qualify")

	for _, r := range reminders {
		assert.NotEmpty(t, r.NotificationID)
		assert.Positive(t, r.TimeRemaining)
	}
}

func TestDueReminders_DefaultWindow(t *testing.T) {
	source := &staticSource{tasks: []models.Task{
		dueTask(1, "within the hour", scanNow.Add(45 * time.Minute)),
		dueTask(2, "later today", scanNow.Add(3 * time.Hour)),
	}}
	engine := NewEngine(source, types.ReminderConfig{}, nil)

	// Window 0 falls back to the configured window, itself defaulted.
	reminders, err := engine.DueReminders(scanNow, 0)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, int64(1), reminders[0].TaskID)
}

func TestDueReminders_IsPure(t *testing.T) {
	source := &staticSource{tasks: []models.Task{
		dueTask(1, "soon", scanNow.Add(10 * time.Minute)),
	}}
	engine := newTestEngine(source)

	first, err := engine.DueReminders(scanNow, time.Hour)
	require.NoError(t, err)
	second, err := engine.DueReminders(scanNow, time.Hour)
	require.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Len(t, second, 1, "querying must not mark anything as notified")

	// And the query leaves the scan cycle untouched.
	fired, err := engine.Scan(scanNow)
	require.NoError(t, err)
	assert.Len(t, fired, 1)
}

func TestScan_FiresOncePerDueTime(t *testing.T) {
	source := &staticSource{tasks: []models.Task{
		dueTask(1, "soon", scanNow.Add(10 * time.Minute)),
	}}
	engine := newTestEngine(source)

	fired, err := engine.Scan(scanNow)
	require.NoError(t, err)
	require.Len(t, fired, 1)
	assert.Equal(t, "soon", fired[0].TaskTitle)

	fired, err = engine.Scan(scanNow.Add(time.Minute))
	require.NoError(t, err)
	assert.Empty(t, fired, "a task is notified at most once per due time")
}

func TestScan_DueDateChangeStartsNewCycle(t *testing.T) {
	due := scanNow.Add(10 * time.Minute)
	source := &staticSource{tasks: []models.Task{dueTask(1, "meeting", due)}}
	engine := newTestEngine(source)

	fired, err := engine.Scan(scanNow)
	require.NoError(t, err)
	require.Len(t, fired, 1)

	// Rescheduling resets the reminder lifecycle for the task.
	moved := scanNow.Add(40 * time.Minute)
	source.tasks[0].DueAt = &moved

	fired, err = engine.Scan(scanNow.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, fired, 1)
	assert.True(t, fired[0].DueAt.Equal(moved))
}

func TestScan_CompletionDoesNotRefire(t *testing.T) {
	due := scanNow.Add(10 * time.Minute)
	source := &staticSource{tasks: []models.Task{dueTask(1, "chore", due)}}
	engine := newTestEngine(source)

	fired, err := engine.Scan(scanNow)
	require.NoError(t, err)
	require.Len(t, fired, 1)

	// Completing and then un-completing with the same due time stays quiet.
	source.tasks[0].Completed = true
	fired, err = engine.Scan(scanNow.Add(time.Minute))
	require.NoError(t, err)
	assert.Empty(t, fired)

	source.tasks[0].Completed = false
	fired, err = engine.Scan(scanNow.Add(2 * time.Minute))
	require.NoError(t, err)
	assert.Empty(t, fired)
}

func TestScan_DeletionDropsTracking(t *testing.T) {
	due := scanNow.Add(10 * time.Minute)
	source := &staticSource{tasks: []models.Task{dueTask(1, "ephemeral", due)}}
	engine := newTestEngine(source)

	fired, err := engine.Scan(scanNow)
	require.NoError(t, err)
	require.Len(t, fired, 1)

	source.tasks = nil
	_, err = engine.Scan(scanNow.Add(time.Minute))
	require.NoError(t, err)

	engine.mu.Lock()
	remaining := len(engine.notified)
	engine.mu.Unlock()
	assert.Zero(t, remaining, "tracking for deleted tasks must be dropped")
}

func TestScan_OverdueTasksDoNotFire(t *testing.T) {
	source := &staticSource{tasks: []models.Task{
		dueTask(1, "missed", scanNow.Add(-time.Hour)),
	}}
	engine := newTestEngine(source)

	fired, err := engine.Scan(scanNow)
	require.NoError(t, err)
	assert.Empty(t, fired, "already-overdue tasks belong to the overdue query, not reminders")

	overdue, err := engine.Overdue(scanNow)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, int64(1), overdue[0].ID)
}

func TestStop_WithoutStart(t *testing.T) {
	engine := newTestEngine(&staticSource{})
	assert.NotPanics(t, engine.Stop)
}

func TestStartStop(t *testing.T) {
	due := scanNow.Add(10 * time.Minute)
	source := &staticSource{tasks: []models.Task{dueTask(1, "ping", due)}}

	got := make(chan models.Reminder, 1)
	engine := NewEngine(source, types.ReminderConfig{
		Window:       time.Hour,
		PollInterval: 5 * time.Millisecond,
	}, func(r models.Reminder) { got <- r })
	engine.now = func() time.Time { return scanNow }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	engine.Start(ctx)
	select {
	case r := <-got:
		assert.Equal(t, int64(1), r.TaskID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a reminder")
	}
	engine.Stop()
}
