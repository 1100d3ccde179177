package repository

import (
	"context"

	"readbooks-backend/internal/domain"
)

// Lookups return domain.ErrNotFound for missing rows; every other backend error is
// wrapped with domain.ErrStoreFailure.

type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context, category string) ([]domain.Book, error)
	Update(ctx context.Context, id string, patch domain.BookPatch) error

	// DecrementAvailable takes one copy in a single conditioned update. It reports false when
	// the book no longer has a copy left (or no longer exists) at write time.
	DecrementAvailable(ctx context.Context, id string) (bool, error)
	// IncrementAvailable puts one copy back. It reports false when the book does not exist.
	IncrementAvailable(ctx context.Context, id string) (bool, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type BorrowRepository interface {
	// Create returns domain.ErrDuplicateLoan when an active loan for the same book and
	// email already exists.
	Create(ctx context.Context, record *domain.BorrowRecord) error
	GetByID(ctx context.Context, id string) (*domain.BorrowRecord, error)
	FindActive(ctx context.Context, bookID, email string) (*domain.BorrowRecord, error)
	ListByEmail(ctx context.Context, email string) ([]domain.BorrowRecord, error)
	ListDueBefore(ctx context.Context, date string) ([]domain.BorrowRecord, error)
	// Delete reports false when the record was already gone.
	Delete(ctx context.Context, id string) (bool, error)
}
