package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when a query targets a local row
	// (identified by its autoincrement id or remote id) that does not exist.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrDocumentNotFound is returned when a server-side lookup targets a
	// document id that does not exist in the collection.
	ErrDocumentNotFound = errors.New("document was not found")

	// ErrDuplicateDocument is returned when an insert violates the
	// (collection, local_id) uniqueness backstop, meaning the same offline
	// insert has already been applied.
	ErrDuplicateDocument = errors.New("document already exists")

	// ErrKeyNotFound is returned when the keyvalue table has no row for the
	// requested key.
	ErrKeyNotFound = errors.New("key was not found")

	// ErrAdminNotSeeded is returned when the admin table is read before the
	// default row has been seeded.
	ErrAdminNotSeeded = errors.New("admin row was not seeded")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
