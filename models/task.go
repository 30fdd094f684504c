package models

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tidytask/tidytask/types"
)

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "HIGH"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityLow    TaskPriority = "LOW"
)

// Rank returns the natural sort position of a priority: HIGH sorts first.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// ParsePriority converts a case-insensitive priority string to a TaskPriority.
// The boolean reports whether the input named a known priority.
func ParsePriority(s string) (TaskPriority, bool) {
	switch TaskPriority(strings.ToUpper(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityLow:
		return PriorityLow, true
	}
	return "", false
}

// RecurrencePattern represents the rule governing automatic next-instance
// generation for a repeating task.
type RecurrencePattern string

const (
	RecurrenceDaily   RecurrencePattern = "DAILY"
	RecurrenceWeekly  RecurrencePattern = "WEEKLY"
	RecurrenceMonthly RecurrencePattern = "MONTHLY"
)

// ParseRecurrence converts a case-insensitive pattern string to a
// RecurrencePattern. The boolean reports whether the input named a known
// pattern.
func ParseRecurrence(s string) (RecurrencePattern, bool) {
	switch RecurrencePattern(strings.ToUpper(strings.TrimSpace(s))) {
	case RecurrenceDaily:
		return RecurrenceDaily, true
	case RecurrenceWeekly:
		return RecurrenceWeekly, true
	case RecurrenceMonthly:
		return RecurrenceMonthly, true
	}
	return "", false
}

// Task represents a single todo item.
//
// ID, CreatedAt and UpdatedAt are assigned by the store; a task that has not
// been inserted yet carries their zero values.
type Task struct {
	ID          int64              `json:"id" validate:"min=0"`
	Title       string             `json:"title" validate:"required,min=1,max=200"`
	Description string             `json:"description,omitempty" validate:"max=1000"`
	Completed   bool               `json:"completed"`
	Priority    TaskPriority       `json:"priority" validate:"required,oneof=HIGH MEDIUM LOW"`
	Categories  []string           `json:"categories,omitempty" validate:"dive,taskcategory"`
	DueAt       *time.Time         `json:"dueAt,omitempty"`
	Recurrence  *RecurrencePattern `json:"recurrence,omitempty" validate:"omitempty,oneof=DAILY WEEKLY MONTHLY"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" validate:"gtefield=CreatedAt"`
}

// Clone returns a deep copy of the task. Categories, DueAt and Recurrence get
// fresh backing storage so the copy never aliases the original.
func (t Task) Clone() Task {
	c := t
	if t.Categories != nil {
		c.Categories = make([]string, len(t.Categories))
		copy(c.Categories, t.Categories)
	}
	if t.DueAt != nil {
		due := *t.DueAt
		c.DueAt = &due
	}
	if t.Recurrence != nil {
		rec := *t.Recurrence
		c.Recurrence = &rec
	}
	return c
}

// IsOverdue reports whether the task is incomplete with a due time at or
// before now.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.DueAt != nil && !t.DueAt.After(now)
}

// Reminder is a transient notification value computed from an incomplete
// task's due time. It is never stored.
type Reminder struct {
	NotificationID string        `json:"notificationId"`
	TaskID         int64         `json:"taskId"`
	TaskTitle      string        `json:"taskTitle"`
	DueAt          time.Time     `json:"dueAt"`
	TimeRemaining  time.Duration `json:"timeRemaining"`
}

// categoryPattern limits tags to alphanumerics, hyphens and underscores, at
// most 50 characters.
var categoryPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,50}$`)

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	_ = validate.RegisterValidation("taskcategory", validateCategoryFormat)
}

// jsonFieldName reports field names from their json tags so validation
// failures name the same fields callers supplied.
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

func validateCategoryFormat(fl validator.FieldLevel) bool {
	return categoryPattern.MatchString(fl.Field().String())
}

// ValidCategory reports whether s is a well-formed category tag.
func ValidCategory(s string) bool {
	return categoryPattern.MatchString(s)
}

// ValidateTask checks a task against the model's validation tags. On failure
// it returns a types.ValidationError naming the first offending field.
func ValidateTask(t Task) error {
	err := validate.Struct(t)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}
	e := verrs[0]
	return types.NewValidationError(e.Field(), reasonForTag(e))
}

func reasonForTag(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "must not be empty"
	case "min":
		return "below minimum length " + e.Param()
	case "max":
		return "exceeds maximum length " + e.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "taskcategory":
		return "must be 1-50 alphanumeric, hyphen or underscore characters"
	case "gtefield":
		return "must not precede " + e.Param()
	}
	return "failed rule " + e.Tag()
}
