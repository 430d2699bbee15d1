// Package ui is the atmos terminal dashboard, built on Bubble Tea.
//
// # Architecture
//
// Model owns the application state and is its only writer. Weather lookups,
// location requests and summary fetches run as tea.Cmd values and report back
// as messages, so every state change happens inside Update:
//
//   - app.go: Model, Options, the key dispatch and request bookkeeping
//   - commands.go: collaborator interfaces, messages and commands
//   - dashboard.go: search bar plus the grid and list renderings of saved cities
//   - detail.go: the per-city panel with its chart and place summary
//   - modal.go, settings.go, help.go: overlays and the settings page
//   - header.go, layout.go: top bar, command bar and toast line
//
// # Requests
//
// A loading indicator stays visible while any weather or location request
// is outstanding. Results are applied in arrival order; a late success still
// inserts its city. Summary results carry the generation of the panel that
// asked for them and are dropped once that panel has closed or moved on.
//
// # Credentials
//
// Without an API key the key prompt opens on start. Escape continues in demo
// mode with simulated data. A lookup rejected as unauthorized clears the
// stored key, shows a toast and reopens the prompt.
//
// # Key Bindings
//
//   - /: Search for a city
//   - L: Add the current location
//   - enter: Open the selected city
//   - v: Toggle grid/list view
//   - T: Toggle light/dark theme
//   - s or tab: Settings
//   - K / X: Enter or remove the API key
//   - C: Clear saved cities
//   - y: Copy the summary link (detail panel)
//   - ?: Help
//   - q or ctrl+c: Quit
package ui
