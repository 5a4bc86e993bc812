package constants

import "errors"

// Command errors.
var (
	ErrQueryRequired     = errors.New("query is required")
	ErrHostRequired      = errors.New("at least one host is required")
	ErrCursorRequired    = errors.New("cursor is required")
	ErrInvalidSize       = errors.New("size must be positive")
	ErrInvalidPage       = errors.New("page must be positive")
	ErrUnknownOutput     = errors.New("unknown output format")
	ErrCSVNeedsFields    = errors.New("--csv-file requires --fields")
	ErrFingerprintAbsent = errors.New("no fingerprint matches keyword")
	ErrEmailRequired     = errors.New("email is required")
	ErrKeyRequired       = errors.New("API key is required")
	ErrConfigExists      = errors.New("config file already exists, use --force to overwrite")
)

// Export errors.
var (
	ErrNoPublisher        = errors.New("publisher is not connected")
	ErrRowFieldMismatch   = errors.New("row width does not match field count")
	ErrEmptyExportPath    = errors.New("export path is empty")
	ErrPathTraversalFound = errors.New("path contains directory traversal sequences")
	ErrDrainTimeout       = errors.New("timed out waiting for NATS connection to close")
)
