package blobstore

import (
	"context"
	"io"
)

// BlobStore holds the normalized photo bytes, keyed by the generated
// filename. The catalog owns the metadata; this owns the content.
type BlobStore interface {
	// Write stores data whole under name, overwriting any existing file.
	Write(ctx context.Context, name string, data []byte) error
	// Open returns a reader over the stored bytes.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Exists reports whether a blob is present under name.
	Exists(ctx context.Context, name string) bool
	// Delete removes the blob. A missing blob is treated as already deleted
	// so catalog cleanup stays idempotent.
	Delete(ctx context.Context, name string) error
}
