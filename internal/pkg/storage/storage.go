package storage

import (
	"context"
	"io"
)

// FileStorage is where rendered payslips are cached. A payslip is rendered
// once, stored under a period-scoped key, and served from storage afterwards
// so the document never changes once issued.
type FileStorage interface {
	// Upload stores a file under the given key and returns the cleaned key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download opens a stored file for reading. The caller closes it.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete drops a stored file. A missing file is not an error.
	Delete(ctx context.Context, path string) error

	// Exists reports whether a file is stored under the key.
	Exists(ctx context.Context, path string) (bool, error)
}
