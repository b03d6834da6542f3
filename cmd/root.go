// Package cmd implements the CLI command structure for checklist.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/checklist-go/internal/config"
	"github.com/nibzard/checklist-go/internal/exitcode"
	"github.com/nibzard/checklist-go/internal/logging"
	"github.com/nibzard/checklist-go/internal/storage"
	"github.com/nibzard/checklist-go/internal/todo"
	"github.com/nibzard/checklist-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Streams are the standard streams a command reads from and writes to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run executes the checklist CLI on the process streams.
func Run(ctx context.Context, args []string) error {
	return Execute(ctx, args, Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
}

// Execute runs the CLI with explicit streams. The returned error carries an
// exit code readable with exitcode.Of.
func Execute(ctx context.Context, args []string, streams Streams) error {
	err := execute(ctx, args, streams)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

func execute(ctx context.Context, args []string, streams Streams) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(streams.Err)
	fs.Usage = func() {
		printUsage(fs, streams.Err)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return exitcode.Wrap(exitcode.ConfigError, fmt.Errorf("loading config: %w", err))
	}
	if *help {
		printUsage(fs, streams.Out)
		return nil
	}

	cfg := cws.Config
	a := &app{
		cws:     cws,
		cfg:     cfg,
		streams: streams,
		logger:  logging.NewFromConfig(streams.Err, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller),
	}
	for _, w := range cws.Warnings {
		a.logger.Warn("config", "warning", w)
	}
	if *showVersion {
		return a.versionCommand()
	}

	// Determine the subcommand. Without one, open the TUI on a terminal
	// and list tasks otherwise.
	subcommand := "ls"
	if ui.IsTTY(streams.Out) {
		subcommand = "tui"
	}
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	// Execute the subcommand
	switch subcommand {
	case "add":
		return a.addCommand(remainingArgs)
	case "ls", "list":
		return a.lsCommand(remainingArgs)
	case "toggle", "done":
		return a.toggleCommand(subcommand, remainingArgs)
	case "rm", "delete":
		return a.rmCommand(remainingArgs)
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "doctor":
		return a.doctorCommand(remainingArgs)
	case "config":
		return a.configCommand(remainingArgs)
	case "version":
		return a.versionCommand()
	case "help":
		printUsage(fs, streams.Out)
		return nil
	default:
		fmt.Fprintf(streams.Err, "Unknown command: %s\n", subcommand)
		printUsage(fs, streams.Err)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// app carries what every subcommand needs.
type app struct {
	cws     *config.ConfigWithSources
	cfg     *config.Config
	streams Streams
	logger  *log.Logger
}

// session is an open task store and the backend behind it.
type session struct {
	store   *todo.Store
	adapter *storage.Adapter
	backend storage.Backend
}

func (s *session) Close() error {
	return s.backend.Close()
}

// openSession validates the config, opens the configured backend and loads
// the task list from it.
func (a *app) openSession(logger *log.Logger) (*session, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, exitcode.Wrap(exitcode.ConfigError, err)
	}
	backend, err := storage.Open(a.cfg.Backend, a.cfg.DataDir)
	if err != nil {
		return nil, exitcode.Wrap(exitcode.StorageError, fmt.Errorf("opening %s backend: %w", a.cfg.Backend, err))
	}
	logger = logger.With("backend", a.cfg.Backend)
	adapter := storage.NewAdapter(backend, logger)
	store := todo.Open(adapter, a.cfg.Key, todo.WithLogger(logger))
	return &session{store: store, adapter: adapter, backend: backend}, nil
}

// withSession opens a session, runs fn, and closes the backend.
func (a *app) withSession(fn func(s *session) error) (err error) {
	s, err := a.openSession(a.logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = exitcode.Wrap(exitcode.StorageError, fmt.Errorf("closing backend: %w", cerr))
		}
	}()
	return fn(s)
}

// storeError maps store errors to exit codes.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, todo.ErrFlush) {
		return exitcode.Wrap(exitcode.StorageError, err)
	}
	return exitcode.Wrap(exitcode.UserError, err)
}

// versionCommand prints version information.
func (a *app) versionCommand() error {
	fmt.Fprintf(a.streams.Out, "%s version %s\n", config.AppName, Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Checklist - a single-user task list for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  checklist [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <text...>          Add a task")
	fmt.Fprintln(w, "  ls [all|completed|pending]  List tasks (default when not on a terminal)")
	fmt.Fprintln(w, "  toggle <ref>           Toggle a task between pending and completed (alias: done)")
	fmt.Fprintln(w, "  rm <ref> [-y]          Delete a task, asking first unless -y")
	fmt.Fprintln(w, "  tui                    Launch terminal UI (default on a terminal)")
	fmt.Fprintln(w, "  doctor                 Check config, storage, and stored data")
	fmt.Fprintln(w, "  config [-example]      Show effective config and where each value came from")
	fmt.Fprintln(w, "  version                Show version information")
	fmt.Fprintln(w, "  help                   Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A <ref> is a position from 'checklist ls', a task id, or a unique id prefix.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  CHECKLIST_CONFIG, CHECKLIST_DATA_DIR, CHECKLIST_BACKEND, CHECKLIST_KEY,")
	fmt.Fprintln(w, "  CHECKLIST_CONFIRM_DELETE, CHECKLIST_LOG_LEVEL, CHECKLIST_LOG_FORMAT,")
	fmt.Fprintln(w, "  CHECKLIST_LOG_TIMESTAMPS, CHECKLIST_LOG_CALLER, CHECKLIST_LOG_DIR")
}

// parseArgs parses flags that may appear before, between, or after
// positional arguments.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		// Everything after a literal -- is positional.
		if len(args) > len(rest) && args[len(args)-len(rest)-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// newFlagSet creates a subcommand flag set writing to stderr.
func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(config.AppName+" "+name, flag.ContinueOnError)
	fs.SetOutput(a.streams.Err)
	return fs
}
