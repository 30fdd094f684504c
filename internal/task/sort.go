package task

import (
	"sort"
	"strings"
	"time"

	"github.com/tidytask/tidytask/models"
	"github.com/tidytask/tidytask/types"
)

// SortKey identifies a task ordering.
type SortKey string

const (
	SortByDueDate   SortKey = "due_date"
	SortByPriority  SortKey = "priority"
	SortByCreatedAt SortKey = "created_at"
	SortByTitle     SortKey = "title"
)

// ParseSortKey converts a sort field name to a SortKey.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortByDueDate:
		return SortByDueDate, true
	case SortByPriority:
		return SortByPriority, true
	case SortByCreatedAt:
		return SortByCreatedAt, true
	case SortByTitle:
		return SortByTitle, true
	}
	return "", false
}

// StatusFilter selects tasks by completion state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
)

// FilterParams holds optional filter criteria. Supplied criteria are ANDed;
// empty values mean "no constraint".
type FilterParams struct {
	Status   StatusFilter
	Priority string
	Category string
}

// Filter returns the tasks matching every supplied criterion, in insertion
// order.
func (s *Service) Filter(p FilterParams) ([]models.Task, error) {
	status := p.Status
	if status == "" {
		status = StatusAll
	}
	switch status {
	case StatusAll, StatusPending, StatusCompleted:
	default:
		return nil, types.NewValidationError("status", "must be one of: all, pending, completed")
	}

	var priority models.TaskPriority
	if strings.TrimSpace(p.Priority) != "" {
		parsed, ok := models.ParsePriority(p.Priority)
		if !ok {
			return nil, types.NewValidationError("priority", "must be one of: HIGH, MEDIUM, LOW")
		}
		priority = parsed
	}
	category := strings.ToLower(strings.TrimSpace(p.Category))

	tasks, err := s.store.List()
	if err != nil {
		return nil, err
	}

	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if status == StatusPending && t.Completed {
			continue
		}
		if status == StatusCompleted && !t.Completed {
			continue
		}
		if priority != "" && t.Priority != priority {
			continue
		}
		if category != "" && !hasCategory(t, category) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func hasCategory(t models.Task, category string) bool {
	for _, c := range t.Categories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// Sorted returns a snapshot of all tasks ordered by key. Reverse inverts the
// final ordering after all tie-break rules have been applied.
func (s *Service) Sorted(key SortKey, reverse bool) ([]models.Task, error) {
	tasks, err := s.store.List()
	if err != nil {
		return nil, err
	}
	return s.SortTasks(tasks, key, reverse)
}

// SortTasks orders the given tasks by key, so filtered results can be sorted
// without another snapshot. The input slice is sorted in place and returned.
//
// Due-date ordering puts overdue incomplete tasks first regardless of raw
// timestamp, then not-yet-due tasks ascending, then tasks without a due date.
// Priority orders HIGH before MEDIUM before LOW. Titles compare
// case-insensitively. All orderings are stable with respect to insertion
// order.
func (s *Service) SortTasks(tasks []models.Task, key SortKey, reverse bool) ([]models.Task, error) {
	var less func(a, b models.Task) bool
	switch key {
	case SortByDueDate:
		now := s.now()
		less = func(a, b models.Task) bool { return dueLess(a, b, now) }
	case SortByPriority:
		less = func(a, b models.Task) bool { return a.Priority.Rank() < b.Priority.Rank() }
	case SortByCreatedAt:
		less = func(a, b models.Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortByTitle:
		less = func(a, b models.Task) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	default:
		return nil, types.NewValidationError("sort", "must be one of: due_date, priority, created_at, title")
	}

	sort.SliceStable(tasks, func(i, j int) bool { return less(tasks[i], tasks[j]) })
	if reverse {
		for i, j := 0, len(tasks)-1; i < j; i, j = i+1, j-1 {
			tasks[i], tasks[j] = tasks[j], tasks[i]
		}
	}
	return tasks, nil
}

// dueLess ranks overdue-and-incomplete tasks before everything else, then
// tasks with due dates ascending, then tasks without one.
func dueLess(a, b models.Task, now time.Time) bool {
	ra, rb := dueRank(a, now), dueRank(b, now)
	if ra != rb {
		return ra < rb
	}
	if a.DueAt == nil || b.DueAt == nil {
		return false
	}
	return a.DueAt.Before(*b.DueAt)
}

func dueRank(t models.Task, now time.Time) int {
	switch {
	case t.IsOverdue(now):
		return 0
	case t.DueAt != nil:
		return 1
	}
	return 2
}
