// Package app is the composition root for atmos.
//
// # Overview
//
// It wires configuration, logging, the SQLite state store, the weather,
// summary and location clients, and the Bubble Tea UI. Every entry point runs
// the same setup:
//
//	┌──────────────┐
//	│   setup()    │
//	└──────┬───────┘
//	       ├─────> config.Load()       Read ~/.config/atmos/config.toml
//	       ├─────> cfg.LoadEnv()       Optional .env, ATMOS_API_KEY
//	       ├─────> logging.New()       zap JSON file logger
//	       ├─────> weather.NewClient() Remote + mock sources
//	       └─────> storage.Open()      SQLite key/value store
//
// Run then loads the persisted state and hands everything to ui.Run. Lookup
// and History serve the read-only CLI commands and never write state.
//
// # Error Handling
//
// Fatal errors are returned to main:
//
//   - Config file unreadable or invalid TOML
//   - Logger or state store cannot be opened
//   - A client base URL that does not parse
//
// A persisted document that fails to decode is logged and replaced by the
// default state; it is overwritten on the next save.
//
// # API Key Seeding
//
// When the stored key is empty and ATMOS_API_KEY is set, the environment key
// is used for the session. It is persisted only once the TUI saves state.
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{}); err != nil {
//		log.Fatalf("atmos failed: %v", err)
//	}
package app
