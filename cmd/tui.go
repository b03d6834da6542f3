package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/checklist-go/internal/exitcode"
	"github.com/nibzard/checklist-go/internal/logging"
	"github.com/nibzard/checklist-go/internal/ui"
)

// tuiCommand launches the terminal UI over the configured task list.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := a.newFlagSet("tui")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("unexpected arguments: %v", positional)
	}
	if !ui.IsTTY(a.streams.Out) {
		return fmt.Errorf("tui requires a TTY")
	}

	// The program owns the terminal, so debug logs go to a run log file.
	logger := logging.Discard()
	if logging.ParseLevel(a.cfg.LogLevel) == log.DebugLevel {
		runLog, err := logging.OpenRunLog(a.cfg.RunLogDir())
		if err != nil {
			a.logger.Warn("run log unavailable", "err", err)
		} else {
			defer runLog.Close()
			logger = logging.NewFromConfig(runLog.Writer(), a.cfg.LogLevel, a.cfg.LogFormat, true, a.cfg.LogCaller)
			a.logger.Debug("writing run log", "path", runLog.Path)
		}
	}

	s, err := a.openSession(logger)
	if err != nil {
		return err
	}
	defer s.Close()

	err = ui.RunTUI(ctx, s.store,
		ui.WithLogger(logger),
		ui.WithLocation(storageLocation(s.backend, a.cfg.Key)),
	)
	if err != nil && ctx.Err() != nil {
		return exitcode.Wrap(exitcode.Interrupted, ctx.Err())
	}
	return err
}
