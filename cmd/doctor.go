package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/nibzard/checklist-go/internal/config"
	"github.com/nibzard/checklist-go/internal/exitcode"
	"github.com/nibzard/checklist-go/internal/logging"
	"github.com/nibzard/checklist-go/internal/storage"
)

var errDoctor = errors.New("doctor found problems")

// doctorCommand checks config, storage, and the stored task list.
func (a *app) doctorCommand(args []string) error {
	fs := a.newFlagSet("doctor")
	verbose := fs.Bool("v", false, "Verbose output")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("unexpected arguments: %v", positional)
	}
	w := a.streams.Out

	fmt.Fprintln(w, "Checklist Doctor")
	fmt.Fprintln(w, "================")
	fmt.Fprintln(w)

	// Check config
	fmt.Fprintln(w, "Config:")
	if len(a.cws.Files) == 0 {
		fmt.Fprintln(w, "  ✅ Files: none (using defaults)")
	}
	for _, f := range a.cws.Files {
		fmt.Fprintf(w, "  ✅ File: %s\n", f)
	}
	for _, warning := range a.cws.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warning)
	}
	if err := a.cfg.Validate(); err != nil {
		fmt.Fprintf(w, "  ❌ %v\n", err)
		return exitcode.Wrap(exitcode.ConfigError, errDoctor)
	}
	fmt.Fprintf(w, "  ✅ Backend: %s\n", a.cfg.Backend)
	fmt.Fprintf(w, "  ✅ Key: %s\n", a.cfg.Key)
	fmt.Fprintln(w)

	// Check storage
	fmt.Fprintln(w, "Storage:")
	s, err := a.openSession(logging.Discard())
	if err != nil {
		fmt.Fprintf(w, "  ❌ %v\n", err)
		return exitcode.Wrap(exitcode.StorageError, errDoctor)
	}
	defer s.Close()
	fmt.Fprintf(w, "  ✅ Location: %s\n", storageLocation(s.backend, a.cfg.Key))
	if *verbose {
		if keys, err := s.backend.Keys(); err == nil {
			fmt.Fprintf(w, "     Keys: %v\n", keys)
		}
	}
	fmt.Fprintln(w)

	// Check stored data
	fmt.Fprintln(w, "Task list:")
	report := s.adapter.Inspect(a.cfg.Key)
	if !writeReport(w, report, *verbose) {
		return exitcode.Wrap(exitcode.StorageError, errDoctor)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "All checks passed.")
	return nil
}

// writeReport prints an Inspect report and returns whether it is healthy.
func writeReport(w io.Writer, report storage.Report, verbose bool) bool {
	switch {
	case report.ReadErr != nil:
		fmt.Fprintf(w, "  ❌ Read error: %v\n", report.ReadErr)
		return false
	case !report.Exists:
		fmt.Fprintf(w, "  ✅ Key %q not written yet (starts empty)\n", report.Key)
		return true
	case !report.Valid():
		fmt.Fprintf(w, "  ❌ Stored value is invalid (%d bytes); it will load as an empty list:\n", report.Size)
		for _, e := range report.Errors {
			fmt.Fprintf(w, "     - %v\n", e)
		}
		return false
	}
	fmt.Fprintf(w, "  ✅ %d tasks, %d completed, %d pending\n", report.Counts.Total, report.Counts.Completed, report.Counts.Pending)
	if verbose {
		fmt.Fprintf(w, "     Size: %d bytes\n", report.Size)
	}
	return true
}

// storageLocation describes where a backend keeps key.
func storageLocation(b storage.Backend, key string) string {
	switch b := b.(type) {
	case *storage.FileBackend:
		return b.Path(key)
	case *storage.SQLiteBackend:
		return b.Path() + " (key " + key + ")"
	default:
		return "memory (not persisted)"
	}
}

// configCommand prints the effective config with the source of each value.
func (a *app) configCommand(args []string) error {
	fs := a.newFlagSet("config")
	example := fs.Bool("example", false, "Print an example config file")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("unexpected arguments: %v", positional)
	}
	w := a.streams.Out

	if *example {
		fmt.Fprint(w, config.ExampleConfig())
		return nil
	}

	for _, field := range config.Fields() {
		value := a.cfg.Value(field)
		if field == "log_dir" && value == "" {
			value = a.cfg.RunLogDir()
		}
		fmt.Fprintf(w, "%-15s = %-40q # %s\n", field, value, a.cws.Sources[field])
	}
	if len(a.cws.Files) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Files read:")
		for _, f := range a.cws.Files {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
	if err := a.cfg.Validate(); err != nil {
		return exitcode.Wrap(exitcode.ConfigError, err)
	}
	return nil
}
