package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# checklist configuration file
# Values can be overridden by CHECKLIST_* environment variables or CLI flags

# Directory holding task data (supports ~ expansion and %VAR% on Windows)
# data_dir = "~/.local/share/checklist"

# Storage backend: file, sqlite, or memory
backend = "file"

# Storage key the task list is saved under
key = "tasks"

# Ask for confirmation before rm deletes a task
confirm_delete = true

# Logging
log_level = "info"     # debug, info, warn, error
log_format = "text"    # text, json, logfmt
log_timestamps = false
log_caller = false

# Directory for TUI run logs (default: <data_dir>/logs)
# log_dir = "~/.local/share/checklist/logs"
`
}
