package service

import "errors"

var (
	// ErrInvalidCredentials is returned when a supplied admin password does
	// not match the stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnknownCollection is returned when a document operation addresses a
	// collection no record type maps to.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrDocumentNotFound is returned when a document operation addresses an
	// id that does not exist.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrDuplicateDocument is returned when adding a document whose
	// (collection, localId) pair is already taken.
	ErrDuplicateDocument = errors.New("document already exists")

	// ErrRecordNotFound is returned when a record operation addresses a local
	// id that does not exist.
	ErrRecordNotFound = errors.New("record not found")
)
