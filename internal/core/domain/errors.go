package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrFolderNotFound indicates a named folder does not exist in the
	// bookmark manager. Fatal: raised before any pipeline work proceeds.
	ErrFolderNotFound = errors.New("folder not found")

	// ErrNotGoogleDocURL indicates a URL without a recognisable document
	// identifier (no /d/ path segment).
	ErrNotGoogleDocURL = errors.New("not a google docs url")

	// ErrInvalidConfig indicates the credentials file is missing or
	// incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")
)
