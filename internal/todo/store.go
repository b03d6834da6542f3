package todo

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultKey is the storage key the task list is persisted under.
const DefaultKey = "tasks"

// Persistence is the durable store a Store loads from and flushes to.
type Persistence interface {
	// Load returns the tasks stored under key. A missing or unreadable
	// value yields an empty list.
	Load(key string) []Task
	// Save overwrites the value under key with the full task list.
	Save(key string, tasks []Task) error
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for flush and load messages.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator replaces the UUID generator used by Add.
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// Store owns the task list and keeps it in sync with its Persistence.
// It is not safe for concurrent use; callers drive it from a single
// event loop.
type Store struct {
	persist Persistence
	key     string
	logger  *log.Logger
	newID   func() string

	tasks  []Task
	filter Filter
}

// Open creates a Store holding the tasks currently persisted under key.
// An empty key selects DefaultKey.
func Open(persist Persistence, key string, opts ...StoreOption) *Store {
	if key == "" {
		key = DefaultKey
	}
	s := &Store{
		persist: persist,
		key:     key,
		logger:  log.New(io.Discard),
		newID:   uuid.NewString,
		filter:  FilterAll,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.tasks = slices.Clone(persist.Load(key))
	if s.tasks == nil {
		s.tasks = []Task{}
	}
	s.logger.Debug("loaded task list", "key", key, "count", len(s.tasks))
	return s
}

// Key returns the storage key the store flushes to.
func (s *Store) Key() string {
	return s.key
}

// Add appends a new pending task with the trimmed text. Blank text is
// rejected with ErrRejected and nothing is written. Invalid UTF-8 bytes
// are replaced with U+FFFD so the stored text matches what JSON keeps.
//
// If the flush fails the task is still added and returned alongside an
// error wrapping ErrFlush.
func (s *Store) Add(rawText string) (Task, error) {
	text := strings.TrimSpace(strings.ToValidUTF8(rawText, "\uFFFD"))
	if text == "" {
		return Task{}, ErrRejected
	}

	task := Task{
		ID:          s.uniqueID(),
		Text:        text,
		IsCompleted: false,
	}
	s.tasks = append(s.tasks, task)
	return task, s.flush("add")
}

// Toggle flips the completion flag of the task with the given id in place.
func (s *Store) Toggle(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("toggle %q: %w", id, ErrNotFound)
	}
	s.tasks[i].IsCompleted = !s.tasks[i].IsCompleted
	return s.flush("toggle")
}

// Delete removes the task with the given id. The caller obtains the user's
// confirmation first; confirmed=false returns ErrCancelled without looking
// the task up.
func (s *Store) Delete(id string, confirmed bool) error {
	if !confirmed {
		return ErrCancelled
	}
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return s.flush("delete")
}

// SetFilter changes the view filter. It is never persisted.
func (s *Store) SetFilter(f Filter) {
	switch f {
	case FilterCompleted, FilterPending:
		s.filter = f
	default:
		s.filter = FilterAll
	}
}

// Filter returns the current view filter.
func (s *Store) Filter() Filter {
	return s.filter
}

// FilteredView returns a copy of the tasks matching the current filter,
// in list order. It is recomputed on every call.
func (s *Store) FilteredView() []Task {
	view := make([]Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if s.filter.Match(task) {
			view = append(view, task)
		}
	}
	return view
}

// Tasks returns a copy of the full task list.
func (s *Store) Tasks() []Task {
	return slices.Clone(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Position returns the 1-based position of the task in the full list,
// or 0 if absent.
func (s *Store) Position(id string) int {
	return s.indexOf(id) + 1
}

// Counts returns totals for the full list.
func (s *Store) Counts() Counts {
	c := Counts{Total: len(s.tasks)}
	for _, task := range s.tasks {
		if task.IsCompleted {
			c.Completed++
		}
	}
	c.Pending = c.Total - c.Completed
	return c
}

// Resolve turns a user reference into a task id. A reference is either a
// 1-based position in the full list, a full id, or a unique id prefix.
// Digits beyond the list length are tried as an id prefix.
func (s *Store) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty reference: %w", ErrNotFound)
	}

	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(s.tasks) {
		return s.tasks[n-1].ID, nil
	}
	if i := s.indexOf(ref); i >= 0 {
		return s.tasks[i].ID, nil
	}

	var matches []string
	for _, task := range s.tasks {
		if strings.HasPrefix(task.ID, ref) {
			matches = append(matches, task.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("reference %q: %w", ref, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("reference %q matches %d tasks: %w", ref, len(matches), ErrAmbiguous)
	}
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// uniqueID draws ids until one is not already in the list.
func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

func (s *Store) flush(op string) error {
	if err := s.persist.Save(s.key, s.Tasks()); err != nil {
		s.logger.Error("flush failed", "op", op, "key", s.key, "err", err)
		return fmt.Errorf("%w: %w", ErrFlush, err)
	}
	s.logger.Debug("flushed task list", "op", op, "key", s.key, "count", len(s.tasks))
	return nil
}
