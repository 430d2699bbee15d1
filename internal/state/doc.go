// Package state holds the dashboard's persisted application state and the
// rules that mutate it.
//
// # Core Types
//
// State:
//   - Saved cities, most recent first, at most MaxCities entries
//   - Card layout (grid or list) and colour theme (light or dark)
//   - Settings: display name, avatar URL and the weather API key
//
// KV:
//   - Durable key/value storage; the whole State is one JSON document
//     stored under Key
//
// # City List Rules
//
// AddCity is the only way cities enter the list:
//
//	st.AddCity(snap)
//	→ entries whose name equals snap.Name (case-insensitive) are removed
//	→ snap is prepended
//	→ the list is truncated to MaxCities
//
// Names are never merged or rewritten; "paris" replaces "Paris" and the new
// spelling is kept.
//
// # Loading
//
// Load never fails hard. A missing document yields Default; an unreadable or
// corrupt one yields Default plus the error so the caller can log it. Fields
// absent from an older document keep their default values.
//
// State is a plain value owned by the UI goroutine. Use Clone when handing a
// copy to another goroutine.
package state
