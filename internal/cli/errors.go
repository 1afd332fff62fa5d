package cli

import "errors"

var (
	// ErrAborted is returned when the user aborts an operation.
	ErrAborted = errors.New("operation aborted by user")

	// ErrOperationFailed is returned when apt exits unsuccessfully.
	ErrOperationFailed = errors.New("operation failed")
)
