// Package task implements the business-rule layer over the task store: input
// validation, search, filtering, sorting, and recurrence orchestration.
package task

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tidytask/tidytask/internal/recurrence"
	"github.com/tidytask/tidytask/models"
	"github.com/tidytask/tidytask/store"
	"github.com/tidytask/tidytask/types"
)

// DefaultMaxTasks caps the in-memory collection when no explicit limit is
// configured.
const DefaultMaxTasks = 10000

// Service is the public surface consumed by external collaborators such as
// CLI or HTTP handlers. It is the sole validator: the store beneath it only
// ever reports NotFound.
type Service struct {
	store    store.TaskStore
	maxTasks int
	now      func() time.Time
}

// NewService creates a task service over the given store. maxTasks caps the
// collection size; pass 0 for the default, or a negative value to disable the
// cap.
func NewService(st store.TaskStore, maxTasks int) *Service {
	if maxTasks == 0 {
		maxTasks = DefaultMaxTasks
	}
	return &Service{
		store:    st,
		maxTasks: maxTasks,
		now:      time.Now,
	}
}

// CreateTaskParams carries the caller-supplied fields for a new task.
// Priority and Recurrence arrive as plain strings per the boundary contract;
// empty means "default" and "none" respectively.
type CreateTaskParams struct {
	Title       string
	Description string
	Priority    string
	Categories  []string
	DueAt       *time.Time
	Recurrence  string
}

// CreateTask validates the input, materializes the task through the store,
// and returns the stored copy. Any violation is reported as a
// types.ValidationError naming the offending field.
func (s *Service) CreateTask(p CreateTaskParams) (models.Task, error) {
	if s.maxTasks > 0 {
		n, err := s.store.Count()
		if err != nil {
			return models.Task{}, err
		}
		if n >= s.maxTasks {
			return models.Task{}, types.ErrTaskLimitReached
		}
	}

	title, err := normalizeTitle(p.Title)
	if err != nil {
		return models.Task{}, err
	}
	desc, err := normalizeDescription(p.Description)
	if err != nil {
		return models.Task{}, err
	}
	categories, err := normalizeCategories(p.Categories)
	if err != nil {
		return models.Task{}, err
	}

	priority := models.PriorityMedium
	if strings.TrimSpace(p.Priority) != "" {
		parsed, ok := models.ParsePriority(p.Priority)
		if !ok {
			return models.Task{}, types.NewValidationError("priority", "must be one of: HIGH, MEDIUM, LOW")
		}
		priority = parsed
	}

	var rec *models.RecurrencePattern
	if strings.TrimSpace(p.Recurrence) != "" {
		parsed, ok := models.ParseRecurrence(p.Recurrence)
		if !ok {
			return models.Task{}, types.NewValidationError("recurrence", "must be one of: DAILY, WEEKLY, MONTHLY")
		}
		rec = &parsed
	}

	var due *time.Time
	if p.DueAt != nil {
		if !p.DueAt.After(s.now()) {
			return models.Task{}, types.NewValidationError("dueAt", "must be in the future")
		}
		d := *p.DueAt
		due = &d
	}
	if rec != nil && due == nil {
		return models.Task{}, types.NewValidationError("recurrence", "recurring tasks require a due date")
	}

	task := models.Task{
		Title:       title,
		Description: desc,
		Priority:    priority,
		Categories:  categories,
		DueAt:       due,
		Recurrence:  rec,
	}
	if err := models.ValidateTask(task); err != nil {
		return models.Task{}, err
	}
	return s.store.Create(task)
}

// GetTask returns the task with the given id.
func (s *Service) GetTask(id int64) (models.Task, error) {
	return s.store.Get(id)
}

// List returns a snapshot of every task in insertion order.
func (s *Service) List() ([]models.Task, error) {
	return s.store.List()
}

// UpdateTaskParams carries a partial update. Nil fields are left untouched;
// the Clear flags remove the optional fields.
type UpdateTaskParams struct {
	Title           *string
	Description     *string
	Priority        *string
	Categories      []string
	SetCategories   bool
	DueAt           *time.Time
	ClearDueAt      bool
	Recurrence      *string
	ClearRecurrence bool
}

// UpdateTask validates the supplied fields, applies them atomically, and
// returns the updated task. Fields that are not supplied keep their values.
func (s *Service) UpdateTask(id int64, p UpdateTaskParams) (models.Task, error) {
	current, err := s.store.Get(id)
	if err != nil {
		return models.Task{}, err
	}

	apply, err := s.buildPatch(current, p)
	if err != nil {
		return models.Task{}, err
	}
	return s.store.Update(id, apply)
}

// buildPatch validates the supplied fields against the current task and
// returns the mutator to hand to the store.
func (s *Service) buildPatch(current models.Task, p UpdateTaskParams) (func(*models.Task), error) {
	var (
		title      *string
		desc       *string
		priority   *models.TaskPriority
		categories []string
		due        *time.Time
		rec        *models.RecurrencePattern
	)

	if p.Title != nil {
		t, err := normalizeTitle(*p.Title)
		if err != nil {
			return nil, err
		}
		title = &t
	}
	if p.Description != nil {
		d, err := normalizeDescription(*p.Description)
		if err != nil {
			return nil, err
		}
		desc = &d
	}
	if p.Priority != nil {
		parsed, ok := models.ParsePriority(*p.Priority)
		if !ok {
			return nil, types.NewValidationError("priority", "must be one of: HIGH, MEDIUM, LOW")
		}
		priority = &parsed
	}
	if p.SetCategories {
		normalized, err := normalizeCategories(p.Categories)
		if err != nil {
			return nil, err
		}
		categories = normalized
	}
	if p.DueAt != nil && p.ClearDueAt {
		return nil, types.NewValidationError("dueAt", "cannot set and clear the due date at once")
	}
	if p.DueAt != nil {
		if !p.DueAt.After(s.now()) {
			return nil, types.NewValidationError("dueAt", "must be in the future")
		}
		d := *p.DueAt
		due = &d
	}
	if p.Recurrence != nil && p.ClearRecurrence {
		return nil, types.NewValidationError("recurrence", "cannot set and clear the recurrence at once")
	}
	if p.Recurrence != nil {
		parsed, ok := models.ParseRecurrence(*p.Recurrence)
		if !ok {
			return nil, types.NewValidationError("recurrence", "must be one of: DAILY, WEEKLY, MONTHLY")
		}
		rec = &parsed
	}

	// Check the resulting state keeps recurrence paired with a due date.
	next := current.Clone()
	if rec != nil {
		next.Recurrence = rec
	}
	if p.ClearRecurrence {
		next.Recurrence = nil
	}
	if due != nil {
		next.DueAt = due
	}
	if p.ClearDueAt {
		next.DueAt = nil
	}
	if next.Recurrence != nil && next.DueAt == nil {
		return nil, types.NewValidationError("recurrence", "recurring tasks require a due date")
	}

	return func(t *models.Task) {
		if title != nil {
			t.Title = *title
		}
		if desc != nil {
			t.Description = *desc
		}
		if priority != nil {
			t.Priority = *priority
		}
		if p.SetCategories {
			t.Categories = categories
		}
		if due != nil {
			t.DueAt = due
		}
		if p.ClearDueAt {
			t.DueAt = nil
		}
		if rec != nil {
			t.Recurrence = rec
		}
		if p.ClearRecurrence {
			t.Recurrence = nil
		}
	}, nil
}

// DeleteTask removes the task permanently. Deletion never triggers
// recurrence generation.
func (s *Service) DeleteTask(id int64) error {
	return s.store.Delete(id)
}

// ToggleResult is the outcome of a completion toggle. Next is non-nil only
// when the pending-to-completed transition of a recurring task spawned a new
// instance.
type ToggleResult struct {
	Task models.Task
	Next *models.Task
}

// ToggleCompletion flips the task's completed flag. When a recurring task
// transitions from pending to completed, the recurrence engine computes the
// next occurrence and exactly one new task is created for it. The reverse
// transition has no side effects.
func (s *Service) ToggleCompletion(id int64) (ToggleResult, error) {
	updated, err := s.store.Update(id, func(t *models.Task) {
		t.Completed = !t.Completed
	})
	if err != nil {
		return ToggleResult{}, err
	}

	result := ToggleResult{Task: updated}
	if !updated.Completed || updated.Recurrence == nil {
		return result, nil
	}

	next, err := recurrence.NextInstance(updated)
	if err != nil {
		return result, err
	}
	// The next occurrence goes straight to the store: its due time is
	// computed, not user input, and may legitimately already have passed.
	// It also skips the capacity cap, so completing a recurring task at the
	// limit overshoots by one instead of silently ending the chain.
	created, err := s.store.Create(next)
	if err != nil {
		return result, err
	}
	result.Next = &created
	return result, nil
}

// Search returns tasks whose title or description contains the keyword,
// case-insensitively. An empty keyword matches nothing; use List for the
// unfiltered collection.
func (s *Service) Search(keyword string) ([]models.Task, error) {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return []models.Task{}, nil
	}

	tasks, err := s.store.List()
	if err != nil {
		return nil, err
	}
	matched := make([]models.Task, 0)
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

// Overdue returns incomplete tasks whose due time is at or before now, in
// insertion order.
func (s *Service) Overdue(now time.Time) ([]models.Task, error) {
	tasks, err := s.store.List()
	if err != nil {
		return nil, err
	}
	out := make([]models.Task, 0)
	for _, t := range tasks {
		if t.IsOverdue(now) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Upcoming returns incomplete tasks due between now and now+horizon, in
// insertion order.
func (s *Service) Upcoming(now time.Time, horizon time.Duration) ([]models.Task, error) {
	tasks, err := s.store.List()
	if err != nil {
		return nil, err
	}
	limit := now.Add(horizon)
	out := make([]models.Task, 0)
	for _, t := range tasks {
		if t.Completed || t.DueAt == nil {
			continue
		}
		if !t.DueAt.Before(now) && !t.DueAt.After(limit) {
			out = append(out, t)
		}
	}
	return out, nil
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", types.NewValidationError("title", "must not be empty")
	}
	// Limits count characters, not bytes.
	if utf8.RuneCountInString(title) > 200 {
		return "", types.NewValidationError("title", "exceeds maximum length 200")
	}
	return title, nil
}

func normalizeDescription(desc string) (string, error) {
	desc = strings.TrimSpace(desc)
	if utf8.RuneCountInString(desc) > 1000 {
		return "", types.NewValidationError("description", "exceeds maximum length 1000")
	}
	return desc, nil
}

// normalizeCategories trims, lowercases and de-duplicates tags, preserving
// first-seen order. Blank entries are dropped rather than rejected.
func normalizeCategories(categories []string) ([]string, error) {
	if len(categories) == 0 {
		return nil, nil
	}
	seen := make(map[string]struct{}, len(categories))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if !models.ValidCategory(c) {
			return nil, types.NewValidationError("categories", "tag "+strconv.Quote(c)+" must be 1-50 alphanumeric, hyphen or underscore characters")
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
