package adapter

import "errors"

// Sentinel errors mapping remote document store responses. Callers match with
// [errors.Is].
var (
	// ErrUnavailable covers transport failures and 5xx responses: the store
	// cannot be reached or cannot serve right now. The sync layer treats it
	// as "offline".
	ErrUnavailable = errors.New("remote store unavailable")

	// ErrNotFound maps a 404: the addressed document does not exist.
	ErrNotFound = errors.New("remote document not found")

	// ErrConflict maps a 409: the document's (collection, localId) pair is
	// already taken, so the insert was applied before.
	ErrConflict = errors.New("remote document already exists")

	// ErrUnauthorized maps a 401: the configured API token was rejected.
	ErrUnauthorized = errors.New("remote store rejected credentials")

	// ErrRemote covers any other non-2xx response.
	ErrRemote = errors.New("remote store error")
)
