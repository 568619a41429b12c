package config

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is wrapped by a DeserializationError when the merged
	// mapping has a key the target does not declare.
	ErrUnknownField = errors.New("unknown field")
	// ErrMissingField is wrapped by a DeserializationError when a required
	// field is absent from every layer.
	ErrMissingField = errors.New("missing required field")
	// ErrNoLoader is returned when a file path is given to a resolver that
	// was built without a Loader.
	ErrNoLoader = errors.New("no config file loader configured")

	errNoConverter = errors.New("no converter configured")
)

// IoError reports a config file that could not be read.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("failed to read file at %s: %v", e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// ParseError reports a config file whose content is malformed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DeserializationError reports a merged mapping that does not fit the
// target shape. Field is empty when the failure is not tied to one field.
type DeserializationError struct {
	Field string
	Err   error
}

func (e *DeserializationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("failed to deserialize merged config: %v", e.Err)
	}
	return fmt.Sprintf("failed to deserialize merged config: field %q: %v", e.Field, e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }
