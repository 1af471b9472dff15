package listing

import (
	"errors"
	"net/http"

	"collegebooks/internal/httpx"
)

// maxUploadMemory bounds how much of a multipart body is held in
// memory before spilling to temp files.
const maxUploadMemory = 10 << 20

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List handles GET /api/books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	f := Filter{
		Search:  query.Get("search"),
		Author:  query.Get("author"),
		Edition: query.Get("edition"),
	}

	books, err := h.service.List(r.Context(), f)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// Create handles POST /api/books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "expected a multipart form body", nil)
		return
	}

	in := CreateInput{
		Title:         r.FormValue("title"),
		Edition:       r.FormValue("edition"),
		Author:        r.FormValue("author"),
		ImageURL:      r.FormValue("imageUrl"),
		ContactPhone:  r.FormValue("contactPhone"),
		ContactEmail:  r.FormValue("contactEmail"),
		Price:         r.FormValue("price"),
		OriginalPrice: r.FormValue("originalPrice"),
	}

	var image *Upload
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		image = &Upload{Filename: header.Filename, Content: file}
	}

	book, err := h.service.Create(r.Context(), in, image)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			httpx.JSONError(w, http.StatusBadRequest, "invalid book input", errorDetails(verr))
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, book)
}

// Delete handles DELETE /api/books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "Book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	httpx.JSONMessage(w, http.StatusOK, "Book deleted successfully")
}

func errorDetails(verr *ValidationError) []httpx.ErrorDetail {
	details := make([]httpx.ErrorDetail, 0, len(verr.Fields))
	for _, fe := range verr.Fields {
		details = append(details, httpx.ErrorDetail{Field: fe.Field, Message: fe.Message})
	}
	return details
}
