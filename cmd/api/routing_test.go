package main

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"collegebooks/internal/listing"
	"collegebooks/internal/upload"
)

func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	images, err := upload.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("cannot create upload store: %v", err)
	}
	service := listing.NewService(seededMemoryRepo(), images)
	handler := listing.NewHTTPHandler(service)
	return newRouter(handler, images.Dir(), nil)
}

func decodeBooks(t *testing.T, w *httptest.ResponseRecorder) []listing.Book {
	t.Helper()
	var books []listing.Book
	if err := json.Unmarshal(w.Body.Bytes(), &books); err != nil {
		t.Fatalf("cannot decode body %q: %v", w.Body.String(), err)
	}
	return books
}

func TestRouting_ListAndFilter(t *testing.T) {
	router := newTestRouter(t)

	t.Run("no filter returns the seed, newest first", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/books", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		books := decodeBooks(t, w)
		if len(books) != 3 {
			t.Fatalf("Expected 3 seeded books, got %d", len(books))
		}
		if books[0].Title != "Introduction to Computer Science" {
			t.Errorf("Unexpected first book %q", books[0].Title)
		}
	})

	t.Run("search filter", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/books?search=science", nil))

		books := decodeBooks(t, w)
		if len(books) != 1 || books[0].Title != "Introduction to Computer Science" {
			t.Errorf("Unexpected result %+v", books)
		}
	})

	t.Run("author filter", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/books?author=doe", nil))

		books := decodeBooks(t, w)
		if len(books) != 1 || books[0].Author != "Jane Doe" {
			t.Errorf("Unexpected result %+v", books)
		}
	})
}

func TestRouting_CreateAndDelete(t *testing.T) {
	router := newTestRouter(t)

	var buf strings.Builder
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{
		"title":         "Discrete Structures",
		"edition":       "1st Edition",
		"author":        "Ada Lovelace",
		"imageUrl":      "https://example.com/ds.jpg",
		"contactPhone":  "+1555000222",
		"contactEmail":  "ada@example.com",
		"price":         "25",
		"originalPrice": "60",
	}
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(buf.String()))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created listing.Book
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("cannot decode created book: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Expected a server-assigned id")
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/books", nil))
	books := decodeBooks(t, w)
	if len(books) != 4 || books[0].ID != created.ID {
		t.Errorf("Expected the new book first, got %+v", books)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/books/"+created.ID, nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 on delete, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/books/"+created.ID, nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on repeated delete, got %d", w.Code)
	}
}

func TestRouting_Probes(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 for %s, got %d", path, w.Code)
		}
	}
}
