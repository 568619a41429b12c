package config

import (
	"context"
)

// Loader is the interface for a format-specific configuration file loader.
type Loader interface {
	// Load reads the file at path and returns its top-level key/value pairs.
	// Unreadable files fail with *IoError, malformed ones with *ParseError.
	Load(ctx context.Context, path string) (Mapping, error)
}

// Converter binds a merged Mapping to a Go value.
type Converter interface {
	// Decode populates target (a non-nil pointer to a struct) from values.
	// Shape mismatches fail with *DeserializationError.
	Decode(ctx context.Context, values Mapping, target any) error
}
