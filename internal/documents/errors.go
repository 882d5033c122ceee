package documents

import "errors"

var (
	// ErrNotFound means no document matched the lookup.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidInput means the request failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrForbidden means the document belongs to someone else.
	ErrForbidden = errors.New("forbidden")
)
