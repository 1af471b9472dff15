package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, []string{"a", "b"})

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}
	if body := strings.TrimSpace(w.Body.String()); body != `["a","b"]` {
		t.Errorf("Unexpected body %q", body)
	}
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	JSONError(w, http.StatusBadRequest, "invalid book input", []ErrorDetail{
		{Field: "price", Message: "price must be a number"},
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}

	var resp struct {
		Error   string        `json:"error"`
		Details []ErrorDetail `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Cannot decode body: %v", err)
	}
	if resp.Error != "invalid book input" {
		t.Errorf("Unexpected error message %q", resp.Error)
	}
	if len(resp.Details) != 1 || resp.Details[0].Field != "price" {
		t.Errorf("Unexpected details %+v", resp.Details)
	}
}

func TestJSONError_OmitsEmptyDetails(t *testing.T) {
	w := httptest.NewRecorder()
	JSONError(w, http.StatusNotFound, "Book not found", nil)

	if strings.Contains(w.Body.String(), "details") {
		t.Errorf("Expected details to be omitted, got %q", w.Body.String())
	}
}

func TestJSONMessage(t *testing.T) {
	w := httptest.NewRecorder()
	JSONMessage(w, http.StatusOK, "Book deleted successfully")

	if body := strings.TrimSpace(w.Body.String()); body != `{"message":"Book deleted successfully"}` {
		t.Errorf("Unexpected body %q", body)
	}
}
