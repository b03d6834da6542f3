// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.checklist/checklist.toml or OS-specific config directory)
// 3. Project config file (checklist.toml or .checklist.toml in the current directory)
// 4. Explicit config file (-config flag or CHECKLIST_CONFIG)
// 5. Environment variables (CHECKLIST_*)
// 6. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.checklist/checklist.toml (preferred)
// - Windows: %APPDATA%\checklist\checklist.toml
// - macOS: ~/Library/Application Support/checklist/checklist.toml
// - Linux/BSD: $XDG_CONFIG_HOME/checklist/checklist.toml or ~/.config/checklist/checklist.toml
//
// Task data lives in the data directory:
// - $XDG_DATA_HOME/checklist or ~/.local/share/checklist on Linux/BSD
// - ~/Library/Application Support/checklist on macOS
// - %LOCALAPPDATA%\checklist on Windows
package config
