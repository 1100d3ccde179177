package service

import (
	"context"
	"strings"

	"readbooks-backend/internal/domain"
	"readbooks-backend/internal/repository"
)

// NewBookInput is a create request as decoded from the wire; nil means absent.
type NewBookInput struct {
	Name        *string  `json:"name"`
	Image       *string  `json:"image"`
	Author      *string  `json:"author"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Rating      *float64 `json:"rating"`
	Quantity    *int32   `json:"quantity"`
}

func (in NewBookInput) missingFields() []string {
	var missing []string
	str := func(name string, v *string) {
		if v == nil || strings.TrimSpace(*v) == "" {
			missing = append(missing, name)
		}
	}
	str("name", in.Name)
	str("image", in.Image)
	str("author", in.Author)
	str("category", in.Category)
	str("description", in.Description)
	if in.Rating == nil {
		missing = append(missing, "rating")
	}
	if in.Quantity == nil {
		missing = append(missing, "quantity")
	}
	return missing
}

type catalogService struct {
	bookRepo     repository.BookRepository
	categoryRepo repository.CategoryRepository
}

func NewCatalogService(bookRepo repository.BookRepository, categoryRepo repository.CategoryRepository) CatalogService {
	return &catalogService{
		bookRepo:     bookRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *catalogService) ListBooks(ctx context.Context, category string) ([]domain.Book, error) {
	return s.bookRepo.List(ctx, category)
}

func (s *catalogService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	if !ValidID(id) {
		return nil, domain.ErrInvalidReference
	}
	return s.bookRepo.GetByID(ctx, id)
}

func (s *catalogService) CreateBook(ctx context.Context, in NewBookInput) (*domain.Book, error) {
	if missing := in.missingFields(); len(missing) > 0 {
		return nil, &domain.MissingFieldsError{Fields: missing}
	}
	if *in.Quantity < 0 {
		return nil, domain.Invalid("quantity must be >= 0")
	}

	book := &domain.Book{
		Name:        *in.Name,
		Image:       *in.Image,
		Author:      *in.Author,
		Category:    *in.Category,
		Description: *in.Description,
		Rating:      *in.Rating,
		Quantity:    *in.Quantity,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *catalogService) UpdateBook(ctx context.Context, id string, patch domain.BookPatch) error {
	if !ValidID(id) {
		return domain.ErrInvalidReference
	}
	if patch.IsEmpty() {
		return domain.Invalid("no fields to update")
	}
	if patch.Quantity != nil && *patch.Quantity < 0 {
		return domain.Invalid("quantity must be >= 0")
	}
	return s.bookRepo.Update(ctx, id, patch)
}
