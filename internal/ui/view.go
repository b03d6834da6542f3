package ui

import (
	"fmt"
	"strings"

	"github.com/nibzard/checklist-go/internal/todo"
)

func (m *tuiModel) View() string {
	var b strings.Builder
	m.writeTitle(&b)

	if m.showHelp {
		writeHelp(&b, m.styles)
		m.writeFooter(&b)
		return b.String()
	}

	b.WriteString(m.input.View() + "\n\n")
	m.writeFilters(&b)
	m.writeTasks(&b)
	m.writeStatus(&b)
	m.writeFooter(&b)
	return b.String()
}

func (m *tuiModel) writeTitle(b *strings.Builder) {
	c := m.store.Counts()
	b.WriteString(m.styles.Title.Render("Checklist"))
	b.WriteString("  ")
	b.WriteString(m.styles.Counts.Render(fmt.Sprintf("%d tasks, %d completed, %d pending", c.Total, c.Completed, c.Pending)))
	b.WriteString("\n\n")
}

func (m *tuiModel) writeFilters(b *strings.Builder) {
	current := m.store.Filter()
	parts := make([]string, 0, len(todo.Filters()))
	for i, f := range todo.Filters() {
		label := fmt.Sprintf("%d %s", i+1, f.Label())
		if f == current {
			parts = append(parts, m.styles.FilterActive.Render("["+label+"]"))
			continue
		}
		parts = append(parts, m.styles.FilterIdle.Render(" "+label+" "))
	}
	b.WriteString(strings.Join(parts, " ") + "\n\n")
}

func (m *tuiModel) writeTasks(b *strings.Builder) {
	view := m.store.FilteredView()
	if len(view) == 0 {
		b.WriteString("  " + m.styles.Empty.Render(emptyMessage(m.store.Filter())) + "\n\n")
		return
	}
	for i, task := range view {
		b.WriteString(m.formatTask(task, i == m.cursor && m.focus == focusList))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (m *tuiModel) formatTask(t todo.Task, selected bool) string {
	pointer := "  "
	if selected {
		pointer = m.styles.Cursor.Render("> ")
	}
	box := "[ ]"
	text := m.styles.Pending.Render(t.Text)
	if t.IsCompleted {
		box = "[x]"
		text = m.styles.Completed.Render(t.Text)
	}
	return pointer + box + " " + text
}

func (m *tuiModel) writeStatus(b *strings.Builder) {
	if m.confirming != nil {
		b.WriteString(m.styles.Confirm.Render(fmt.Sprintf("Delete task: %s? (y/n)", m.confirming.Text)))
		b.WriteString("\n\n")
		return
	}
	if m.status == "" {
		return
	}
	style := m.styles.Info
	if m.statusErr {
		style = m.styles.Error
	}
	b.WriteString(style.Render(m.status) + "\n\n")
}

func (m *tuiModel) writeFooter(b *strings.Builder) {
	hint := "tab: list | enter: add | ctrl+c: quit"
	if m.focus == focusList {
		hint = "space: toggle | d: delete | 1-3: filter | tab: input | ?: help | q: quit"
	}
	if m.location != "" {
		hint += " | " + m.location
	}
	b.WriteString(m.styles.Footer.Render(hint) + "\n")
}

func writeHelp(b *strings.Builder, s styles) {
	lines := []string{
		"Keyboard Shortcuts",
		"",
		"  tab            Switch between input and list",
		"  enter          Add task (input) / toggle task (list)",
		"  up/down, k/j   Move selection",
		"  space          Toggle completed",
		"  d, x           Delete task (asks first)",
		"  1 / 2 / 3      Show all / completed / pending",
		"  a, i, /        Focus input",
		"  ?, h           Toggle this help screen",
		"  q, ctrl+c      Quit",
	}
	b.WriteString(s.Help.Render(strings.Join(lines, "\n")) + "\n\n")
}

func emptyMessage(f todo.Filter) string {
	switch f {
	case todo.FilterCompleted:
		return "No completed tasks."
	case todo.FilterPending:
		return "Nothing pending."
	default:
		return "No tasks yet. Type one above and press enter."
	}
}
