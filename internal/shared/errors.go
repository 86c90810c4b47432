package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Synchronization error kinds
	ErrValidation = fmt.Errorf("validation failed")
	ErrNotFound   = fmt.Errorf("task not found")
	ErrTransport  = fmt.Errorf("remote request failed")
	ErrParse      = fmt.Errorf("malformed response")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrAborted         = fmt.Errorf("aborted by user")
)
