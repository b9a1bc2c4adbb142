// Package state holds the spreadsheet fetch status shown in the griddy header.
//
// # Overview
//
// The session controller records every fetch here and the UI reads a
// Snapshot each frame. A Snapshot answers the questions the header asks:
// are we online, is a request in flight, which document is loaded, how many
// distinct queries did it yield and when, and did the last attempt fail.
//
// # Update Semantics
//
//	// Success: replace the count, clear the error
//	store.Update(12, nil)
//	→ snapshot.QueryCount = 12
//	→ snapshot.LastError = nil
//	→ snapshot.ConsecutiveFailures = 0
//
//	// Error: keep the old count, record the error
//	store.Update(0, err)
//	→ snapshot.QueryCount = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// Both paths clear Loading and stamp LastUpdated, so the UI can show
// "last attempt 14:32" even when the sheet could not be read.
//
// # Concurrency
//
// Writes happen on the Bubble Tea update goroutine. The store still keeps a
// readers-writer lock so a Snapshot can be taken from any goroutine.
// Snapshot returns a copy, including a fresh error wrapper.
//
// # Testing
//
// The zero Store is ready to use. SetClock pins LastUpdated for tests.
package state
