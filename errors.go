package datalib

import (
	"errors"
	"fmt"
)

// ErrNotDirectory is returned when a library root path does not point to a directory.
var ErrNotDirectory = errors.New("library root is not a directory")

// ErrExportCancelled is returned when an export would overwrite an existing file
// and the confirm strategy declines. Callers should treat it as a cancellation,
// not a failure.
var ErrExportCancelled = errors.New("export cancelled")

// ErrEmptyName is returned when the module name is empty.
var ErrEmptyName = errors.New("module name must not be empty")

// UnknownKeyError is returned when a semantic key is absent from the
// key-to-path table. It indicates a code/config mismatch, not bad data.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown library key %q", e.Key)
}

// ItemNotFoundError is returned when neither library tier holds the requested
// file. It carries the searched subdirectory and filename so callers can
// report an actionable path.
type ItemNotFoundError struct {
	Dir      string
	Filename string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("library item %q not found in %q", e.Filename, e.Dir)
}

// ParseError wraps a decode failure with the path of the offending file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
