// Package config loads quill's TOML configuration.
//
// # Overview
//
// The config file tunes the autosave pipeline (debounce interval, simulated
// backend latency and failure rate, acknowledgment duration), optionally
// points quill at a real HTTP backend, and says where quill writes its log.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided (--config), use it
//  2. Otherwise, use ~/.config/quill/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but a key is missing or blank, keep its default
//
// # TOML Format
//
//	debounce_ms  = 500
//	latency_ms   = 1000
//	failure_rate = 0.3
//	ack_ms       = 3000
//	seed         = 0                       # 0 seeds from the clock
//	endpoint     = ""                      # empty uses the simulator
//	log_dir      = "~/.local/share/quill/logs"
//	log_level    = "info"
//
// Tilde expansion is applied to the config path and log_dir. The endpoint
// loses surrounding whitespace and any trailing slash.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors ("parse config: ...")
//   - Values that fail Validate: a non-positive duration, a failure rate
//     outside [0, 1], an unknown log level
//
// # Testing Considerations
//
// LoadFS takes an afero.Fs so tests can use afero.NewMemMapFs instead of
// touching the user's home directory.
package config
