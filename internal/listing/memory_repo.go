package listing

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is the fallback backend used when the document store is
// unreachable at startup. Records live in process memory only and are
// lost when the process exits.
type MemoryRepo struct {
	mu    sync.Mutex
	books []Book // newest first
}

// NewMemoryRepo creates an empty in-memory repository.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// List applies f in a single linear scan. Records are kept newest
// first, so insertion order is the default sort.
func (r *MemoryRepo) List(ctx context.Context, f Filter) ([]Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Book, 0, len(r.books))
	for _, b := range r.books {
		if f.Matches(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

// Create assigns a fresh ID and CreatedAt and inserts the listing at
// the front.
func (r *MemoryRepo) Create(ctx context.Context, b *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()
	r.books = append([]Book{*b}, r.books...)
	return nil
}

// Delete removes the listing with the given id in place.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.books {
		if b.ID == id {
			r.books = append(r.books[:i], r.books[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
