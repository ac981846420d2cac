// Package logtail reads the end of quill's log file for the activity view.
//
// # Overview
//
// The TUI owns the terminal, so quill logs to a JSON file instead. This
// package extracts the last N lines from that file and decodes them into
// Entry values the UI can color by level.
//
// # Reading Log Files
//
// Read uses a ring buffer to keep only the last maxLines while scanning the
// file once, so memory stays O(maxLines) no matter how large the log grows.
// Lines longer than 1 MiB abort the read. A missing file is not an error;
// the log may simply not exist yet.
//
// Read takes an afero.Fs so tests can run against an in-memory filesystem.
//
// # Decoding
//
// Parse understands the encoder configured by internal/logging: "ts" holds
// an ISO8601 timestamp, "level", "logger" and "msg" are promoted to Entry
// fields, "caller" is dropped, and everything else is kept in Fields.
// Summary renders an entry on a single line.
//
// Example usage:
//
//	lines, err := logtail.Read(afero.NewOsFs(), cfg.LogPath(), 200)
//	for _, line := range lines {
//		if e, ok := logtail.Parse(line); ok {
//			fmt.Println(e.Summary())
//		}
//	}
package logtail
