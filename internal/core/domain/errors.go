package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNoToken indicates the callback arrived without a token parameter.
	// Fatal: the run cannot authenticate.
	ErrNoToken = errors.New("no token received")

	// ErrListenerStart indicates the local callback listener could not bind.
	ErrListenerStart = errors.New("listener start failed")

	// ErrInputRequired indicates a required user-supplied value is missing.
	ErrInputRequired = errors.New("required input missing")

	// ErrFileAccess indicates a discovered file could not be read.
	// Recoverable: the affected file is dropped and the run continues.
	ErrFileAccess = errors.New("file access failed")

	// ErrNormalization indicates content could not be normalized.
	// Recoverable: the affected file is dropped and the run continues.
	ErrNormalization = errors.New("content normalization failed")

	// ErrSubmissionFailed indicates the processing service rejected the
	// submission or was unreachable.
	ErrSubmissionFailed = errors.New("submission failed")

	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")
)
