package config

import "os"

// envBindings maps environment variables to config field names.
var envBindings = []struct {
	env   string
	field string
}{
	{"CHECKLIST_DATA_DIR", "data_dir"},
	{"CHECKLIST_BACKEND", "backend"},
	{"CHECKLIST_KEY", "key"},
	{"CHECKLIST_CONFIRM_DELETE", "confirm_delete"},
	{"CHECKLIST_LOG_LEVEL", "log_level"},
	{"CHECKLIST_LOG_FORMAT", "log_format"},
	{"CHECKLIST_LOG_TIMESTAMPS", "log_timestamps"},
	{"CHECKLIST_LOG_CALLER", "log_caller"},
	{"CHECKLIST_LOG_DIR", "log_dir"},
}

// loadFromEnv overrides config from CHECKLIST_* environment variables and
// records them in sources when it is non-nil.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	for _, b := range envBindings {
		v := os.Getenv(b.env)
		if v == "" {
			continue
		}
		setField(cfg, b.field, v)
		if sources != nil {
			sources[b.field] = SourceEnv
		}
	}
}

// setField assigns a string value to the field with the given TOML name.
func setField(cfg *Config, field, v string) {
	switch field {
	case "data_dir":
		cfg.DataDir = v
	case "backend":
		cfg.Backend = v
	case "key":
		cfg.Key = v
	case "confirm_delete":
		cfg.ConfirmDelete = boolFromString(v)
	case "log_level":
		cfg.LogLevel = v
	case "log_format":
		cfg.LogFormat = v
	case "log_timestamps":
		cfg.LogTimestamps = boolFromString(v)
	case "log_caller":
		cfg.LogCaller = boolFromString(v)
	case "log_dir":
		cfg.LogDir = v
	}
}
