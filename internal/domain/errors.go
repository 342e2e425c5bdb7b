package domain

import "errors"

// Sentinel errors used across layers.
var (
	// ErrUnauthorized is returned for any 401 response. It is the only
	// status code with dedicated handling: it forces the re-authentication
	// view regardless of local token presence.
	ErrUnauthorized = errors.New("unauthorized")

	ErrNoToken  = errors.New("no session token")
	ErrNotFound = errors.New("not found")

	// ErrEmptyQuery rejects empty or whitespace-only search input before
	// any network call is made.
	ErrEmptyQuery = errors.New("empty search query")
)
