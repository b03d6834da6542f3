// Package todo holds the task list state machine and its persisted form.
package todo

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by Store operations. Callers match them with errors.Is.
var (
	// ErrRejected is returned by Add when the text is blank after trimming.
	ErrRejected = errors.New("task text is empty")
	// ErrNotFound is returned when an id or reference matches no task.
	ErrNotFound = errors.New("task not found")
	// ErrCancelled is returned by Delete when the caller did not confirm.
	ErrCancelled = errors.New("delete cancelled")
	// ErrAmbiguous is returned by Resolve when an id prefix matches several tasks.
	ErrAmbiguous = errors.New("ambiguous task reference")
	// ErrFlush wraps a failed write to persistence. The in-memory change
	// has already been applied when it is returned.
	ErrFlush = errors.New("flush task list")
)

// Task represents a single entry in the task list.
type Task struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
}

// IsZero returns true if the task is empty (has no ID).
func (t *Task) IsZero() bool {
	return t.ID == ""
}

// Filter is the view predicate applied by Store.FilteredView.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

// Filters lists the filter modes in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterCompleted, FilterPending}
}

// Label returns the user-facing name of the filter.
func (f Filter) Label() string {
	switch f {
	case FilterCompleted:
		return "Completed"
	case FilterPending:
		return "Pending"
	default:
		return "All"
	}
}

// Match reports whether a task is visible under the filter.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterCompleted:
		return t.IsCompleted
	case FilterPending:
		return !t.IsCompleted
	default:
		return true
	}
}

// ParseFilter parses a filter name. Empty input means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "completed", "done":
		return FilterCompleted, nil
	case "pending", "todo":
		return FilterPending, nil
	default:
		return "", fmt.Errorf("invalid filter %q, must be one of: all, completed, pending", s)
	}
}

// Counts summarizes a task list.
type Counts struct {
	Total     int
	Completed int
	Pending   int
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
