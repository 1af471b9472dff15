package listing

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Service provides listing business logic.
type Service struct {
	repo   Repository
	images ImageStore
}

// NewService creates a new listing service.
func NewService(repo Repository, images ImageStore) *Service {
	return &Service{repo: repo, images: images}
}

// Upload carries an image file received with a create request.
type Upload struct {
	Filename string
	Content  io.Reader
}

// List returns listings matching f, newest first.
func (s *Service) List(ctx context.Context, f Filter) ([]Book, error) {
	books, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// Create validates the input, stores the optional image, and persists
// the listing. A stored image is removed again when persistence fails
// so no orphan file is left behind.
func (s *Service) Create(ctx context.Context, in CreateInput, image *Upload) (Book, error) {
	book, err := buildBook(in, image == nil)
	if err != nil {
		return Book{}, err
	}

	var stored string
	if image != nil {
		name, err := s.images.Save(image.Filename, image.Content)
		if err != nil {
			return Book{}, fmt.Errorf("store image: %w", err)
		}
		stored = name
		book.ImageURL = "/uploads/" + name
	}

	if err := s.repo.Create(ctx, &book); err != nil {
		if stored != "" {
			_ = s.images.Remove(stored)
		}
		return Book{}, err
	}
	return book, nil
}

// Delete removes a listing by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func buildBook(in CreateInput, needImageURL bool) (Book, error) {
	var fields []FieldError

	if err := validate.Struct(in); err != nil {
		for _, ferr := range err.(validator.ValidationErrors) {
			name := jsonFieldName(ferr.Field())
			fields = append(fields, FieldError{Field: name, Message: name + " is required"})
		}
	}

	var price, originalPrice float64
	if in.Price != "" {
		v, err := strconv.ParseFloat(in.Price, 64)
		if err != nil {
			fields = append(fields, FieldError{Field: "price", Message: "price must be a number"})
		}
		price = v
	}
	if in.OriginalPrice != "" {
		v, err := strconv.ParseFloat(in.OriginalPrice, 64)
		if err != nil {
			fields = append(fields, FieldError{Field: "originalPrice", Message: "originalPrice must be a number"})
		}
		originalPrice = v
	}

	if needImageURL && in.ImageURL == "" {
		fields = append(fields, FieldError{Field: "imageUrl", Message: "imageUrl is required when no image file is uploaded"})
	}

	if len(fields) > 0 {
		return Book{}, &ValidationError{Fields: fields}
	}

	return Book{
		Title:         in.Title,
		Edition:       in.Edition,
		Author:        in.Author,
		ImageURL:      in.ImageURL,
		ContactPhone:  in.ContactPhone,
		ContactEmail:  in.ContactEmail,
		Price:         price,
		OriginalPrice: originalPrice,
	}, nil
}

func jsonFieldName(structField string) string {
	return strings.ToLower(structField[:1]) + structField[1:]
}
