package config

import (
	"flag"
	"strconv"
)

// parseFlags defines the global flags on fs, parses args, and applies the
// flags that were set explicitly.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet(AppName, flag.ContinueOnError)
	}

	// Accepted here so flag parsing does not fail; the file was loaded earlier.
	var configFile string
	fs.StringVar(&configFile, "config", cfg.ConfigFile, "Path to a config file")

	var dataDir, backend, key, logLevel, logFormat, logDir string
	var confirmDelete, logTimestamps, logCaller bool
	fs.StringVar(&dataDir, "data-dir", cfg.DataDir, "Directory holding task data")
	fs.StringVar(&backend, "backend", cfg.Backend, "Storage backend (file|sqlite|memory)")
	fs.StringVar(&key, "key", cfg.Key, "Storage key for the task list")
	fs.BoolVar(&confirmDelete, "confirm-delete", cfg.ConfirmDelete, "Ask before deleting tasks")
	fs.StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&logTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&logCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")
	fs.StringVar(&logDir, "log-dir", cfg.LogDir, "Directory for TUI run logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Map flag names to source field names
	flagToField := map[string]string{
		"data-dir":       "data_dir",
		"backend":        "backend",
		"key":            "key",
		"confirm-delete": "confirm_delete",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
		"log-dir":        "log_dir",
	}
	values := map[string]string{
		"data_dir":       dataDir,
		"backend":        backend,
		"key":            key,
		"confirm_delete": strconv.FormatBool(confirmDelete),
		"log_level":      logLevel,
		"log_format":     logFormat,
		"log_timestamps": strconv.FormatBool(logTimestamps),
		"log_caller":     strconv.FormatBool(logCaller),
		"log_dir":        logDir,
	}

	// Only explicitly set flags override earlier sources
	fs.Visit(func(f *flag.Flag) {
		field, ok := flagToField[f.Name]
		if !ok {
			return
		}
		setField(cfg, field, values[field])
		if sources != nil {
			sources[field] = SourceFlag
		}
	})

	return nil
}
