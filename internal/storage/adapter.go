package storage

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/checklist-go/internal/todo"
)

// Adapter stores task lists as JSON in a Backend. It implements
// todo.Persistence.
type Adapter struct {
	backend Backend
	logger  *log.Logger
}

// NewAdapter wraps backend. A nil logger discards output.
func NewAdapter(backend Backend, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Adapter{backend: backend, logger: logger}
}

// Backend returns the wrapped backend.
func (a *Adapter) Backend() Backend {
	return a.backend
}

// Load returns the tasks under key. An absent key, a read failure, or a
// value that fails validation all yield an empty list.
func (a *Adapter) Load(key string) []todo.Task {
	data, ok, err := a.backend.Get(key)
	if err != nil {
		a.logger.Warn("read task list failed, starting empty", "key", key, "err", err)
		return []todo.Task{}
	}
	if !ok {
		return []todo.Task{}
	}

	tasks, err := todo.Decode(data)
	if err != nil {
		a.logger.Warn("stored task list is invalid, starting empty", "key", key, "err", err)
		return []todo.Task{}
	}
	return tasks
}

// Save encodes tasks and replaces the value under key.
func (a *Adapter) Save(key string, tasks []todo.Task) error {
	data, err := todo.Encode(tasks)
	if err != nil {
		return err
	}
	return a.backend.Put(key, data)
}

// Report describes the stored value under a key.
type Report struct {
	Key     string
	Exists  bool
	Size    int
	Tasks   int
	Counts  todo.Counts
	ReadErr error
	Errors  []error
}

// Valid reports whether the stored value can be loaded as-is.
func (r Report) Valid() bool {
	return r.ReadErr == nil && len(r.Errors) == 0
}

// Inspect validates the value under key without collapsing problems to an
// empty list.
func (a *Adapter) Inspect(key string) Report {
	report := Report{Key: key}
	data, ok, err := a.backend.Get(key)
	if err != nil {
		report.ReadErr = err
		return report
	}
	if !ok {
		return report
	}
	report.Exists = true
	report.Size = len(data)

	result := todo.Validate(data)
	if !result.Valid {
		report.Errors = result.Errors
		return report
	}
	report.Tasks = len(result.Tasks)
	report.Counts.Total = len(result.Tasks)
	for _, task := range result.Tasks {
		if task.IsCompleted {
			report.Counts.Completed++
		}
	}
	report.Counts.Pending = report.Counts.Total - report.Counts.Completed
	return report
}
