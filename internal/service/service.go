package service

import (
	"context"

	"readbooks-backend/internal/domain"
)

type CatalogService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListBooks(ctx context.Context, category string) ([]domain.Book, error)
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	CreateBook(ctx context.Context, input NewBookInput) (*domain.Book, error)
	UpdateBook(ctx context.Context, id string, patch domain.BookPatch) error
}

// LendingService owns the borrow/return lifecycle: the only operations that touch a book
// and a borrow record together.
type LendingService interface {
	Borrow(ctx context.Context, bookID string, req domain.BorrowRequest) (*domain.BorrowRecord, error)
	Return(ctx context.Context, borrowID string) error
	ListBorrowed(ctx context.Context, email string) ([]domain.BorrowRecord, error)
}

type EmailService interface {
	SendOverdueReminder(ctx context.Context, record domain.BorrowRecord) error
}
