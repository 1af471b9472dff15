package listing

import (
	"context"
	"io"
)

// Repository defines the contract for listing storage backends. Both
// implementations must produce observably identical results for the
// same Filter.
type Repository interface {
	// List returns listings matching f, newest first. An empty result
	// is not an error.
	List(ctx context.Context, f Filter) ([]Book, error)
	// Create persists b, assigning its ID and CreatedAt.
	Create(ctx context.Context, b *Book) error
	// Delete removes the listing with the given id, or returns
	// ErrNotFound if no listing matched.
	Delete(ctx context.Context, id string) error
}

// ImageStore persists uploaded listing images.
type ImageStore interface {
	// Save stores the contents of r and returns the stored file name.
	Save(filename string, r io.Reader) (string, error)
	// Remove deletes a previously stored file by name.
	Remove(name string) error
}
