package listing

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a listing is not found.
var ErrNotFound = errors.New("book not found")

// Book represents one secondhand-textbook listing.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Edition       string    `json:"edition"`
	Author        string    `json:"author"`
	ImageURL      string    `json:"imageUrl"`
	ContactPhone  string    `json:"contactPhone"`
	ContactEmail  string    `json:"contactEmail"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"originalPrice"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Filter defines the optional search dimensions for listing books.
// Absent fields impose no constraint; present fields combine with AND.
// Both backends must agree on these semantics exactly.
type Filter struct {
	Search  string
	Author  string
	Edition string
}

// Matches reports whether a book satisfies every present predicate.
// Search matches title or author; Author and Edition match their own
// field. All matching is case-insensitive substring.
func (f Filter) Matches(b Book) bool {
	if f.Search != "" && !containsFold(b.Title, f.Search) && !containsFold(b.Author, f.Search) {
		return false
	}
	if f.Author != "" && !containsFold(b.Author, f.Author) {
		return false
	}
	if f.Edition != "" && !containsFold(b.Edition, f.Edition) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports missing or malformed create input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return "invalid input: " + e.Fields[0].Message
	}
	return fmt.Sprintf("invalid input: %d fields failed validation", len(e.Fields))
}

// CreateInput is the loosely-typed payload for creating a listing.
// Price fields arrive as form strings and are coerced during
// validation. ImageURL is only required when no image file accompanies
// the request.
type CreateInput struct {
	Title         string `validate:"required"`
	Edition       string `validate:"required"`
	Author        string `validate:"required"`
	ImageURL      string
	ContactPhone  string `validate:"required"`
	ContactEmail  string `validate:"required"`
	Price         string `validate:"required"`
	OriginalPrice string `validate:"required"`
}

// SeedListings returns the sample listings loaded into the in-memory
// backend when the document store is unavailable, in display order
// (seed them oldest-last to preserve that order).
func SeedListings() []Book {
	return []Book{
		{
			Title:         "Introduction to Computer Science",
			Edition:       "5th Edition",
			Author:        "John Smith",
			ImageURL:      "https://images.pexels.com/photos/159711/books-bookstore-book-reading-159711.jpeg?auto=compress&cs=tinysrgb&w=400",
			ContactPhone:  "+1234567890",
			ContactEmail:  "seller1@example.com",
			Price:         45,
			OriginalPrice: 80,
		},
		{
			Title:         "Advanced Mathematics",
			Edition:       "3rd Edition",
			Author:        "Jane Doe",
			ImageURL:      "https://images.pexels.com/photos/301920/pexels-photo-301920.jpeg?auto=compress&cs=tinysrgb&w=400",
			ContactPhone:  "+1234567891",
			ContactEmail:  "seller2@example.com",
			Price:         35,
			OriginalPrice: 65,
		},
		{
			Title:         "Physics Fundamentals",
			Edition:       "2nd Edition",
			Author:        "Robert Johnson",
			ImageURL:      "https://images.pexels.com/photos/256541/pexels-photo-256541.jpeg?auto=compress&cs=tinysrgb&w=400",
			ContactPhone:  "+1234567892",
			ContactEmail:  "seller3@example.com",
			Price:         40,
			OriginalPrice: 70,
		},
	}
}
