package config

import (
	"fmt"
	"strings"

	"github.com/nibzard/checklist-go/internal/logging"
	"github.com/nibzard/checklist-go/internal/storage"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceExplicit ConfigSource = "explicit file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values.
const (
	AppName              = "checklist"
	ConfigFileName       = "checklist.toml"
	DefaultBackend       = storage.BackendFile
	DefaultKey           = "tasks"
	DefaultConfirmDelete = true
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
)

// Config holds the full configuration for checklist.
type Config struct {
	// Storage
	DataDir string `toml:"data_dir"`
	Backend string `toml:"backend"`
	Key     string `toml:"key"`

	// Ask before deleting from the CLI
	ConfirmDelete bool `toml:"confirm_delete"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
	// LogDir holds TUI run logs. Empty means <data_dir>/logs.
	LogDir string `toml:"log_dir"`

	// Explicit config file (not persisted in config file)
	ConfigFile string `toml:"-"`
}

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
	// Warnings lists keys found in config files that checklist does not know.
	Warnings []string
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"data_dir",
		"backend",
		"key",
		"confirm_delete",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"log_dir",
	}
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return configFields()
}

// Value returns the display value of a field by its TOML name.
func (c *Config) Value(field string) string {
	switch field {
	case "data_dir":
		return c.DataDir
	case "backend":
		return c.Backend
	case "key":
		return c.Key
	case "confirm_delete":
		return fmt.Sprintf("%t", c.ConfirmDelete)
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return fmt.Sprintf("%t", c.LogTimestamps)
	case "log_caller":
		return fmt.Sprintf("%t", c.LogCaller)
	case "log_dir":
		return c.LogDir
	default:
		return ""
	}
}

// Validate checks that the configuration can be used.
func (c *Config) Validate() error {
	var problems []string
	switch strings.ToLower(c.Backend) {
	case storage.BackendFile, storage.BackendSQLite, storage.BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("backend %q (expected %s)", c.Backend, strings.Join(storage.Backends(), "|")))
	}
	if err := storage.ValidateKey(c.Key); err != nil {
		problems = append(problems, err.Error())
	}
	if strings.TrimSpace(c.DataDir) == "" && strings.ToLower(c.Backend) != storage.BackendMemory {
		problems = append(problems, "data_dir is empty")
	}
	if !logging.ValidLevel(c.LogLevel) {
		problems = append(problems, fmt.Sprintf("log_level %q (expected debug|info|warn|error)", c.LogLevel))
	}
	if !logging.ValidFormat(c.LogFormat) {
		problems = append(problems, fmt.Sprintf("log_format %q (expected text|json|logfmt)", c.LogFormat))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
