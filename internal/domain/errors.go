package domain

import "errors"

// Common domain errors
var (
	ErrEmptyRemotePath    = errors.New("artifact remote path is empty")
	ErrAbsoluteRemotePath = errors.New("artifact remote path must be relative")
	ErrPathEscapesRoot    = errors.New("artifact remote path escapes the local root")
	ErrUnknownTier        = errors.New("unknown tier")
	ErrUnknownOutcome     = errors.New("unknown fetch outcome")
	ErrEmptyCatalog       = errors.New("catalog contains no artifacts")
)

// TransportError marks a network-level or HTTP-status failure during a
// single artifact's fetch. It is recovered at artifact granularity: the
// artifact is counted as failed and the batch moves on.
type TransportError struct {
	Err error
}

// Error returns the error message
func (e *TransportError) Error() string {
	return "transport: " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// FilesystemError marks a failure to create a directory or write a
// destination file. It surfaces to the caller exactly like a transport
// failure: the artifact is counted as failed and the batch moves on.
type FilesystemError struct {
	Err error
}

// Error returns the error message
func (e *FilesystemError) Error() string {
	return "filesystem: " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *FilesystemError) Unwrap() error {
	return e.Err
}
