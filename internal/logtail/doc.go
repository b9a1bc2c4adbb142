// Package logtail reads and formats griddy's JSON log file for display.
//
// # Overview
//
// griddy logs through zap to a JSON-lines file because the terminal belongs
// to the grid. The log overlay in the UI (the L key) uses this package to
// show the most recent lines in a readable form.
//
// # Reading Log Files
//
// Read uses a ring buffer to keep the last maxLines lines, so memory stays
// bounded however large the file grows. A missing file is not an error: the
// overlay simply shows nothing until the first line is written.
//
//	lines, err := logtail.Read(path, 200)
//
// # Decoding
//
// Parse decodes one zap JSON line into an Entry with its time, level,
// logger name, message and remaining fields. The encoder's own keys (ts,
// level, logger, msg, caller, run) are not repeated in Fields. Lines that are
// not JSON, such as a panic trace, are kept verbatim as the message.
//
// Entry.String renders a line like:
//
//	21:01:05 WARN  [session] spreadsheet fetch failed document_id=doc error=boom
//
// Fields are printed in key order so repeated refreshes do not reshuffle.
package logtail
