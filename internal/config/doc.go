// Package config loads griddy's operator configuration.
//
// # Overview
//
// Operator settings say where the queries come from and how often to look:
// Sheets credentials, the poll interval, the connectivity probe, the color
// palette and the log file. They are read once at startup. Per-user display
// settings (grid size, typing speed, document ID) live in package prefs
// instead, because the UI rewrites them as the user adjusts the grid.
//
// # Configuration Discovery
//
// Load uses a private viper instance and resolves each key in this order:
//
//  1. A command-line flag that was explicitly set (--poll, --log-file, ...)
//  2. A GRIDDY_* environment variable (GRIDDY_API_KEY, GRIDDY_POLL_INTERVAL)
//  3. The config file: the given path, or ~/.config/griddy/config.toml
//  4. Built-in defaults
//
// A missing config file is not an error. A malformed one is.
//
// # Default Values
//
//   - poll_interval: 5m
//   - probe_addr: sheets.googleapis.com:443
//   - probe_interval: 15s
//   - colors: #4285F4, #0F9D58, #F4B400, #DB4437
//   - log_file: ~/.local/share/griddy/griddy.log ("off" disables it)
//   - log_level: info
//
// # TOML Format
//
//	api_key = "AIza..."
//	# or: credentials_file = "~/.config/griddy/service-account.json"
//	poll_interval = "5m"
//	colors = ["#4285F4", "#0F9D58", "#F4B400", "#DB4437"]
//	queries_file = "~/queries.yaml"
//
// With neither api_key nor credentials_file set, Static reports true and
// griddy types from queries_file or its built-in sample list.
//
// # Path Expansion
//
// Paths starting with ~ are expanded to the user's home directory and made
// absolute.
package config
