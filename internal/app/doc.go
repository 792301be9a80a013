// Package app wires gobiview together.
//
// # Overview
//
// Run is the composition root: it loads configuration, opens the settings
// storage, builds the gobi client and the shared state.Store, starts the
// poller and hands everything to the ui package.
//
// # Startup
//
//  1. Load ~/.config/gobiview/config.toml and apply CLI overrides
//  2. Route the standard logger and the slog logger to the log file
//  3. Open the storage backend and bind the view settings record to it
//  4. Resolve the report location and attach a session id when missing
//  5. Start the poller, then run the TUI until the user quits or the
//     context is cancelled
//
// # Components
//
//   - app.go: Options, LoadConfig, OpenSettings and Run
//   - poller.go: Background refresh of the results partial
//   - settings.go: The settings show and reset commands
//
// # Polling
//
// The poller fetches the table partial for whatever URL the results
// container is bound to. After a sort the UI rebinds the store, and a poll
// still in flight for the old URL is dropped when it lands. Failures are
// recorded on the store and back off exponentially; a negative poll_seconds
// disables the poller.
//
// # Error Handling
//
// Run returns configuration, storage and client setup errors. Everything
// after startup is logged and shown in the status line instead: a failed
// poll or a failed layout write never stops the UI.
package app
