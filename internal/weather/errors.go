package weather

import "errors"

var (
	// ErrUnauthorized reports an invalid or revoked API key (HTTP 401).
	ErrUnauthorized = errors.New("invalid api key")
	// ErrNotFound reports that a name query matched no location (HTTP 404).
	ErrNotFound = errors.New("city not found")
	// ErrNetwork covers transport failures and any other non-success response.
	ErrNetwork = errors.New("network error")
)
