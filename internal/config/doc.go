// Package config loads the atmos configuration file and environment.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/atmos/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - State database: ~/.local/share/atmos/atmos.db
//   - Log file: ~/.local/state/atmos/atmos.log (log_path = "off" disables it)
//   - Weather API: https://api.openweathermap.org/data/2.5, 10s timeout,
//     5 requests/second with a burst of 2
//   - Demo-mode delay: 600ms (mock_delay_ms < 0 disables it)
//   - Summary API: https://en.wikipedia.org/api/rest_v1
//   - Location lookup: enabled, http://ip-api.com/json/, 5s timeout
//
// # Example
//
//	state_path = "~/.local/share/atmos/atmos.db"
//	log_level = "debug"
//
//	[weather]
//	timeout_seconds = 5
//
//	[location]
//	enabled = false
//
// The API key is never read from the TOML file. LoadEnv picks it up from
// ATMOS_API_KEY, optionally populated from a .env file.
package config
