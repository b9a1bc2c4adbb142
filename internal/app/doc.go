// Package app is the composition root for griddy.
//
// # Overview
//
// Run loads the operator config and user preferences, opens the log file,
// builds the spreadsheet client and wires the grid, the session controller
// and the Bubble Tea model onto one scheduler loop. It blocks until the user
// quits or the context is cancelled.
//
// # Startup
//
//  1. config.Load reads ~/.config/griddy/config.toml, GRIDDY_* env vars and flags
//  2. logging.New opens the JSON log file with a fresh run ID
//  3. prefs.Load reads (or seeds) prefs.toml
//  4. spreadsheet.NewClient builds the Sheets client; without credentials the
//     session runs in static mode on the queries file or the built-in sample
//  5. grid.New, ui.New and session.New share one sched.Loop
//  6. ui.NewProgram runs the TUI while prefs.Watcher feeds outside edits back
//     in as PrefsChangedMsg, both under an errgroup
//
// # Error Handling
//
// Only a bad config file or an unusable log path fails startup. A missing
// or broken spreadsheet client degrades to static mode, and fetch failures
// while running surface as notifications.
//
// # Queries
//
// PrintQueries backs the "griddy queries" command: it fetches one
// spreadsheet and prints its distinct queries without starting the TUI.
package app
