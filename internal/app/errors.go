package app

import "errors"

var (
	// ErrKeyNotFound indicates a key path that is absent from the manifest
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidSpec indicates a dependency specifier that cannot be used
	ErrInvalidSpec = errors.New("invalid version specifier")

	// ErrInvalidSection indicates an unknown dependency section
	ErrInvalidSection = errors.New("invalid dependency section")
)
