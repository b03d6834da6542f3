package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/checklist-go/internal/config"
	"github.com/nibzard/checklist-go/internal/exitcode"
	"github.com/nibzard/checklist-go/internal/todo"
)

// shortIDLen is how many id characters ls shows without -v.
const shortIDLen = 8

// addCommand adds one task from the joined arguments.
func (a *app) addCommand(args []string) error {
	fs := a.newFlagSet("add")
	words, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return exitcode.Wrap(exitcode.UserError, fmt.Errorf("add: missing task text"))
	}

	return a.withSession(func(s *session) error {
		task, err := s.store.Add(strings.Join(words, " "))
		if errors.Is(err, todo.ErrRejected) {
			return storeError(fmt.Errorf("add: %w", err))
		}
		fmt.Fprintf(a.streams.Out, "Added %d: %s (%s)\n", s.store.Position(task.ID), task.Text, shortID(task.ID))
		return storeError(err)
	})
}

// lsCommand lists tasks matching a filter.
func (a *app) lsCommand(args []string) error {
	fs := a.newFlagSet("ls")
	filterFlag := fs.String("filter", "", "Filter tasks (all|completed|pending)")
	verbose := fs.Bool("v", false, "Show full task ids")

	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("unexpected arguments: %v", positional[1:])
	}
	filterName := *filterFlag
	if len(positional) == 1 {
		filterName = positional[0]
	}
	filter, err := todo.ParseFilter(filterName)
	if err != nil {
		return err
	}

	return a.withSession(func(s *session) error {
		s.store.SetFilter(filter)
		printTaskList(a.streams.Out, s.store, s.store.FilteredView(), *verbose)
		return nil
	})
}

// toggleCommand flips the completion state of one task.
func (a *app) toggleCommand(name string, args []string) error {
	fs := a.newFlagSet(name)
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("usage: %s %s <ref>", config.AppName, name)
	}

	return a.withSession(func(s *session) error {
		id, err := s.store.Resolve(positional[0])
		if err != nil {
			return storeError(err)
		}
		err = s.store.Toggle(id)
		if err != nil && !errors.Is(err, todo.ErrFlush) {
			return storeError(err)
		}
		task, _ := s.store.Get(id)
		verb := "Reopened"
		if task.IsCompleted {
			verb = "Completed"
		}
		fmt.Fprintf(a.streams.Out, "%s %d: %s\n", verb, s.store.Position(id), task.Text)
		return storeError(err)
	})
}

// rmCommand deletes one task after confirmation.
func (a *app) rmCommand(args []string) error {
	fs := a.newFlagSet("rm")
	yes := fs.Bool("y", false, "Delete without asking")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("usage: %s rm <ref> [-y]", config.AppName)
	}

	return a.withSession(func(s *session) error {
		id, err := s.store.Resolve(positional[0])
		if err != nil {
			return storeError(err)
		}
		task, _ := s.store.Get(id)

		confirmed := *yes || !a.cfg.ConfirmDelete
		if !confirmed {
			confirmed = confirm(a.streams.In, a.streams.Out, fmt.Sprintf("Delete task: %s?", task.Text))
		}

		err = s.store.Delete(id, confirmed)
		if errors.Is(err, todo.ErrCancelled) {
			fmt.Fprintln(a.streams.Out, "Cancelled")
			return nil
		}
		if err != nil && !errors.Is(err, todo.ErrFlush) {
			return storeError(err)
		}
		fmt.Fprintf(a.streams.Out, "Deleted: %s\n", task.Text)
		return storeError(err)
	})
}

// confirm asks a yes/no question on out and reads the answer from in.
// Anything but y or yes, including EOF, is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	if in == nil {
		fmt.Fprintln(out)
		return false
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// printTaskList prints tasks numbered by their position in the full list,
// followed by a count footer.
func printTaskList(w io.Writer, store *todo.Store, tasks []todo.Task, verbose bool) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
	}
	for _, t := range tasks {
		printTask(w, store.Position(t.ID), t, verbose)
	}
	c := store.Counts()
	fmt.Fprintf(w, "\n%d tasks, %d completed, %d pending", c.Total, c.Completed, c.Pending)
	if f := store.Filter(); f != todo.FilterAll {
		fmt.Fprintf(w, " (showing %s)", strings.ToLower(f.Label()))
	}
	fmt.Fprintln(w)
}

// printTask prints a single task.
func printTask(w io.Writer, pos int, t todo.Task, verbose bool) {
	box := "[ ]"
	if t.IsCompleted {
		box = "[x]"
	}
	id := t.ID
	if !verbose {
		id = shortID(id)
	}
	fmt.Fprintf(w, "%3d. %s %s  (%s)\n", pos, box, t.Text, id)
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}
