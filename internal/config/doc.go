// Package config loads the gobiview configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/gobiview/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/gobiview/config.toml
//   - Server: http://127.0.0.1:8080
//   - Report: 1 (requested as /report?id=1)
//   - Storage: file, at ~/.local/share/gobiview/storage.toml
//   - Poll interval: 30 seconds
//   - Log file: ~/.local/state/gobiview/gobiview.log
//
// # TOML Format
//
//	server = "http://bi.internal:8080"
//	report = "12"                # or a path such as "/report?id=12&page_size=50"
//	storage = "sqlite"           # "file" (default), "sqlite" or "memory"
//	storage_path = "~/.local/share/gobiview/view.sqlite"
//	poll_seconds = 15            # negative disables background refresh
//	log_file = "~/.local/state/gobiview/gobiview.log"
//
// Tilde expansion is applied to storage_path and log_file.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error. Command-line flags are applied on
// top of the loaded Config by the caller.
package config
