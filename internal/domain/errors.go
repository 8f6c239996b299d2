package domain

import (
	"errors"
	"fmt"

	"github.com/quantmind-br/pkgfile-go/internal/document"
)

// Sentinel errors
var (
	// ErrNotFound indicates the manifest file does not exist
	ErrNotFound = errors.New("manifest file not found")

	// ErrInvalidJSON indicates the manifest content is not valid JSON
	ErrInvalidJSON = errors.New("manifest is not valid JSON")

	// ErrNotObject indicates the manifest root is valid JSON but not an object
	ErrNotObject = document.ErrNotObject

	// ErrNilDocument indicates a write was attempted without a document
	ErrNilDocument = errors.New("manifest document is nil")
)

// NewNotFoundError returns an error for a missing manifest path.
// The message always contains "does not exist" so callers matching on
// the text keep working.
func NewNotFoundError(path string) error {
	return fmt.Errorf("%w: %s does not exist", ErrNotFound, path)
}

// ParseError represents a failure to decode manifest content
type ParseError struct {
	Path   string
	Offset int64 // Byte offset of the failure, -1 if unknown
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("parse error in %s at offset %d: %v", e.Path, e.Offset, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports ErrInvalidJSON as a match so callers can use errors.Is
// without caring about the concrete decoder error.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidJSON
}

// NewParseError creates a new ParseError
func NewParseError(path string, offset int64, err error) *ParseError {
	return &ParseError{
		Path:   path,
		Offset: offset,
		Err:    err,
	}
}

// IsNotFound checks if an error reports a missing manifest
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsParseError checks if an error reports undecodable manifest content
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}
