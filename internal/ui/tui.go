// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/checklist-go/internal/logging"
	"github.com/nibzard/checklist-go/internal/todo"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	logger   *log.Logger
	location string
}

// WithLogger sets the logger for key handling messages. The terminal
// belongs to the program, so it should not write to stdout or stderr.
func WithLogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLocation sets the storage description shown in the footer.
func WithLocation(location string) TUIOption {
	return func(c *tuiConfig) {
		c.location = location
	}
}

// RunTUI runs the task list program until the user quits or ctx is done.
func RunTUI(ctx context.Context, store *todo.Store, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	return runProgram(ctx, newTUIModel(store, opts...))
}

func runProgram(ctx context.Context, model *tuiModel) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

type focus int

const (
	focusInput focus = iota
	focusList
)

type tuiModel struct {
	store    *todo.Store
	logger   *log.Logger
	location string
	styles   styles

	input  textinput.Model
	focus  focus
	cursor int // index into the filtered view

	confirming *todo.Task // pending delete awaiting y/n
	showHelp   bool

	status    string
	statusErr bool
	width     int
}

func newTUIModel(store *todo.Store, opts ...TUIOption) *tuiModel {
	c := &tuiConfig{logger: logging.Discard()}
	for _, opt := range opts {
		opt(c)
	}

	input := textinput.New()
	input.Placeholder = "What needs to be done?"
	input.Prompt = "> "
	input.Focus()

	return &tuiModel{
		store:    store,
		logger:   c.logger,
		location: c.location,
		styles:   defaultStyles(),
		input:    input,
		focus:    focusInput,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.confirming != nil {
		m.answerConfirm(key == "y" || key == "Y")
		return m, nil
	}

	switch key {
	case "tab", "shift+tab":
		m.toggleFocus()
		return m, nil
	case "up":
		m.moveCursor(-1)
		return m, nil
	case "down":
		m.moveCursor(1)
		return m, nil
	}

	if m.focus == focusInput {
		switch key {
		case "enter":
			m.submit()
			return m, nil
		case "esc":
			m.setFocus(focusList)
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "?", "h":
		m.showHelp = !m.showHelp
	case "k":
		m.moveCursor(-1)
	case "j":
		m.moveCursor(1)
	case " ", "space", "enter":
		m.toggleSelected()
	case "d", "x", "delete":
		m.askDelete()
	case "1":
		m.setFilter(todo.FilterAll)
	case "2":
		m.setFilter(todo.FilterCompleted)
	case "3":
		m.setFilter(todo.FilterPending)
	case "a", "i", "/":
		m.setFocus(focusInput)
	}
	return m, nil
}

// submit adds the input text as a task. Blank input is ignored and the
// input is only cleared once the task exists.
func (m *tuiModel) submit() {
	if strings.TrimSpace(m.input.Value()) == "" {
		return
	}
	task, err := m.store.Add(m.input.Value())
	if err != nil && !errors.Is(err, todo.ErrFlush) {
		m.setError(err)
		return
	}
	m.input.Reset()
	m.logger.Debug("added task", "id", task.ID)
	if err != nil {
		m.setError(err)
		return
	}
	m.setInfo(fmt.Sprintf("Added %q", task.Text))
}

func (m *tuiModel) toggleSelected() {
	task, ok := m.selected()
	if !ok {
		return
	}
	err := m.store.Toggle(task.ID)
	m.clampCursor()
	if err != nil {
		m.setError(err)
		return
	}
	m.logger.Debug("toggled task", "id", task.ID)
	m.status = ""
}

func (m *tuiModel) askDelete() {
	task, ok := m.selected()
	if !ok {
		return
	}
	m.confirming = &task
}

func (m *tuiModel) answerConfirm(confirmed bool) {
	task := *m.confirming
	m.confirming = nil

	err := m.store.Delete(task.ID, confirmed)
	m.clampCursor()
	switch {
	case errors.Is(err, todo.ErrCancelled):
		m.setInfo("Delete cancelled")
	case err != nil:
		m.setError(err)
	default:
		m.logger.Debug("deleted task", "id", task.ID)
		m.setInfo(fmt.Sprintf("Deleted %q", task.Text))
	}
}

func (m *tuiModel) setFilter(f todo.Filter) {
	m.store.SetFilter(f)
	m.cursor = 0
	m.status = ""
}

func (m *tuiModel) toggleFocus() {
	if m.focus == focusInput {
		m.setFocus(focusList)
		return
	}
	m.setFocus(focusInput)
}

func (m *tuiModel) setFocus(f focus) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
		return
	}
	m.input.Blur()
}

func (m *tuiModel) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *tuiModel) clampCursor() {
	n := len(m.store.FilteredView())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) selected() (todo.Task, bool) {
	view := m.store.FilteredView()
	if m.cursor < 0 || m.cursor >= len(view) {
		return todo.Task{}, false
	}
	return view[m.cursor], true
}

func (m *tuiModel) setError(err error) {
	m.status = statusText(err)
	m.statusErr = true
}

func (m *tuiModel) setInfo(s string) {
	m.status = s
	m.statusErr = false
}

func statusText(err error) string {
	switch {
	case errors.Is(err, todo.ErrFlush):
		return "Could not save: " + err.Error()
	case errors.Is(err, todo.ErrNotFound):
		return "Task no longer exists"
	case errors.Is(err, todo.ErrRejected):
		return "Task text is empty"
	default:
		return err.Error()
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
