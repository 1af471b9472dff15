package listing

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepo_CreateThenList(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	b := Book{Title: "Linear Algebra", Edition: "4th Edition", Author: "Gilbert Strang"}
	require.NoError(t, repo.Create(ctx, &b))

	assert.NotEmpty(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())

	books, err := repo.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, b, books[0])
}

func TestMemoryRepo_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		b := Book{Title: title, Edition: "1st", Author: "a"}
		require.NoError(t, repo.Create(ctx, &b))
	}

	books, err := repo.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "third", books[0].Title)
	assert.Equal(t, "second", books[1].Title)
	assert.Equal(t, "first", books[2].Title)

	// Order is stable across repeated calls.
	again, err := repo.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, books, again)
}

func TestMemoryRepo_UniqueIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		b := Book{Title: "t", Edition: "e", Author: "a"}
		require.NoError(t, repo.Create(ctx, &b))
		assert.False(t, seen[b.ID], "duplicate id %s", b.ID)
		seen[b.ID] = true
	}
}

func TestMemoryRepo_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	a := Book{Title: "keep", Edition: "1st", Author: "x"}
	b := Book{Title: "remove", Edition: "1st", Author: "y"}
	require.NoError(t, repo.Create(ctx, &a))
	require.NoError(t, repo.Create(ctx, &b))

	t.Run("missing id leaves collection unchanged", func(t *testing.T) {
		err := repo.Delete(ctx, "does-not-exist")
		assert.ErrorIs(t, err, ErrNotFound)

		books, err := repo.List(ctx, Filter{})
		require.NoError(t, err)
		assert.Len(t, books, 2)
	})

	t.Run("existing id removes exactly that record", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, b.ID))

		books, err := repo.List(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, a.ID, books[0].ID)
	})
}

func TestMemoryRepo_EmptyResultIsNotAnError(t *testing.T) {
	repo := NewMemoryRepo()

	books, err := repo.List(context.Background(), Filter{Search: "anything"})
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestMemoryRepo_SeedScenario(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	seed := SeedListings()
	for i := len(seed) - 1; i >= 0; i-- {
		require.NoError(t, repo.Create(ctx, &seed[i]))
	}

	t.Run("free-text search", func(t *testing.T) {
		books, err := repo.List(ctx, Filter{Search: "science"})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Introduction to Computer Science", books[0].Title)
	})

	t.Run("author filter", func(t *testing.T) {
		books, err := repo.List(ctx, Filter{Author: "doe"})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Advanced Mathematics", books[0].Title)
	})

	t.Run("no filter returns all, newest first", func(t *testing.T) {
		books, err := repo.List(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, books, 3)
		assert.Equal(t, "Introduction to Computer Science", books[0].Title)
		assert.Equal(t, "Advanced Mathematics", books[1].Title)
		assert.Equal(t, "Physics Fundamentals", books[2].Title)
	})
}

func TestMemoryRepo_ConcurrentUse(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b := Book{Title: "t", Edition: "e", Author: "a"}
			_ = repo.Create(ctx, &b)
			_, _ = repo.List(ctx, Filter{})
		}()
	}
	wg.Wait()

	books, err := repo.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, books, 20)
}
