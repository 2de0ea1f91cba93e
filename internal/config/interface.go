package config

import (
	"context"
)

// Loader is the interface for a format-specific request file loader.
type Loader interface {
	// Extensions lists the file extensions (with the leading dot) the loader
	// accepts.
	Extensions() []string

	// Load reads a request file and decodes it into the format-agnostic
	// File schema. Paths inside the file are returned as written.
	Load(ctx context.Context, path string) (*File, error)
}
