// Package reminder periodically scans for tasks whose due time is imminent
// and emits notification values for them.
package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tidytask/tidytask/models"
	"github.com/tidytask/tidytask/types"
)

const (
	// DefaultWindow is how far ahead of the due time a reminder fires.
	DefaultWindow = time.Hour
	// DefaultPollInterval is how often the engine rescans the collection.
	DefaultPollInterval = 30 * time.Second
)

// TaskSource is the slice of the task service the engine reads through. The
// engine never mutates task state.
type TaskSource interface {
	List() ([]models.Task, error)
	Overdue(now time.Time) ([]models.Task, error)
}

// NotifyFunc receives each reminder at most once per (task id, due time)
// pair for the engine's lifetime.
type NotifyFunc func(models.Reminder)

// key identifies one reminder occurrence. Including the due time means an
// updated due date starts a fresh reminder cycle for the task.
type key struct {
	taskID int64
	dueAt  int64 // unix nanoseconds
}

// Engine surfaces tasks approaching their due time. Reminders are transient:
// nothing is persisted, and the already-notified set lives only as long as
// the engine does.
type Engine struct {
	source   TaskSource
	window   time.Duration
	interval time.Duration
	notify   NotifyFunc
	now      func() time.Time

	mu       sync.Mutex
	notified map[key]struct{}

	stop chan struct{}
	done chan struct{}
}

// NewEngine creates a reminder engine reading through source. Zero values in
// cfg fall back to the defaults. notify may be nil when only the query
// methods are used.
func NewEngine(source TaskSource, cfg types.ReminderConfig, notify NotifyFunc) *Engine {
	window := cfg.Window
	if window <= 0 {
		window = DefaultWindow
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Engine{
		source:   source,
		window:   window,
		interval: interval,
		notify:   notify,
		now:      time.Now,
		notified: make(map[key]struct{}),
	}
}

// DueReminders returns a reminder for every incomplete task due within
// (now, now+window]. Already-overdue tasks are excluded; Overdue reports
// those. A non-positive window falls back to the engine's configured window.
// This is a pure query: it ignores and does not touch the notified set.
func (e *Engine) DueReminders(now time.Time, window time.Duration) ([]models.Reminder, error) {
	if window <= 0 {
		window = e.window
	}
	tasks, err := e.source.List()
	if err != nil {
		return nil, err
	}

	reminders := make([]models.Reminder, 0)
	for _, t := range tasks {
		if t.Completed || t.DueAt == nil {
			continue
		}
		remaining := t.DueAt.Sub(now)
		if remaining > 0 && remaining <= window {
			reminders = append(reminders, newReminder(t, now))
		}
	}
	return reminders, nil
}

// Overdue returns incomplete tasks whose due time has already passed.
func (e *Engine) Overdue(now time.Time) ([]models.Task, error) {
	return e.source.Overdue(now)
}

// Scan emits reminders for tasks that entered the window and have not been
// notified for their current due time, and returns the ones fired. Tracking
// for deleted or rescheduled tasks is dropped so the set cannot grow without
// bound; a completed task keeps its entry, so toggling it back to pending
// does not re-notify unless its due time changes.
func (e *Engine) Scan(now time.Time) ([]models.Reminder, error) {
	tasks, err := e.source.List()
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	live := make(map[key]struct{}, len(tasks))
	var fired []models.Reminder
	for _, t := range tasks {
		if t.DueAt == nil {
			continue
		}
		k := key{taskID: t.ID, dueAt: t.DueAt.UnixNano()}
		live[k] = struct{}{}
		if t.Completed {
			continue
		}
		remaining := t.DueAt.Sub(now)
		if remaining <= 0 || remaining > e.window {
			continue
		}
		if _, seen := e.notified[k]; seen {
			continue
		}
		e.notified[k] = struct{}{}
		fired = append(fired, newReminder(t, now))
	}

	for k := range e.notified {
		if _, ok := live[k]; !ok {
			delete(e.notified, k)
		}
	}
	return fired, nil
}

// Start launches the polling loop on its own goroutine. The loop ends when
// ctx is cancelled or Stop is called. Start must be called at most once.
func (e *Engine) Start(ctx context.Context) {
	e.stop = make(chan struct{})
	e.done = make(chan struct{})
	go e.run(ctx)
}

// Stop ends the polling loop and waits for it to exit. Stop without a prior
// Start is a no-op.
func (e *Engine) Stop() {
	if e.stop == nil {
		return
	}
	close(e.stop)
	<-e.done
}

func (e *Engine) run(ctx context.Context) {
	defer close(e.done)
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.stop:
			return
		case <-ticker.C:
			fired, err := e.Scan(e.now())
			if err != nil {
				continue
			}
			if e.notify == nil {
				continue
			}
			for _, r := range fired {
				e.notify(r)
			}
		}
	}
}

// newReminder builds the transient notification value for a task. The uuid
// lets external sinks correlate or acknowledge individual notifications.
func newReminder(t models.Task, now time.Time) models.Reminder {
	return models.Reminder{
		NotificationID: uuid.NewString(),
		TaskID:         t.ID,
		TaskTitle:      t.Title,
		DueAt:          *t.DueAt,
		TimeRemaining:  t.DueAt.Sub(now),
	}
}
