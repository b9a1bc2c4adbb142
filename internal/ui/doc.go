// Package ui implements the griddy terminal interface with Bubble Tea.
//
// # Overview
//
// The screen is the grid: every cell is drawn as a colored box typing out
// its query. Header and footer bars appear over the first and last rows
// after a key press or mouse movement and hide again after 2.5 seconds of
// inactivity; the f key keeps them hidden. A one-line snackbar shows
// transient notifications from the session controller.
//
// # Event Loop
//
// Everything runs on the Bubble Tea update goroutine. Timers (typing ticks,
// chrome auto-hide, snackbar expiry, cursor blink, log refresh) are
// scheduled on a Driver, normally a *sched.Loop, which turns them into
// tea.Tick commands and runs the callback when the tick message comes back.
// Blocking work (spreadsheet fetches, saving preferences, reading the log
// file) goes through Driver.Go and returns its result as a completion.
//
// # Overlays
//
//   - ?: key help
//   - d: spreadsheet document ID prompt (bubbles/textinput)
//   - L: log tail (bubbles/viewport), refreshed every 2 seconds while open
//
// # Settings
//
// r/R, c/C and -/+ adjust rows, columns and typing speed. Every change is
// applied to the grid at once and written to prefs.toml off the loop.
// Changes made to that file by another process arrive as PrefsChangedMsg.
package ui
