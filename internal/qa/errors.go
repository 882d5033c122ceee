package qa

import "errors"

var (
	// ErrInvalidInput means the filename or question failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrModelCall means the language model call failed.
	ErrModelCall = errors.New("model call failed")
)
