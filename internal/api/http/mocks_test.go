package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"readbooks-backend/internal/domain"
	"readbooks-backend/internal/security"
	"readbooks-backend/internal/service"
)

// MockCatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockCatalogService) ListBooks(ctx context.Context, category string) ([]domain.Book, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}
func (m *MockCatalogService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockCatalogService) CreateBook(ctx context.Context, input service.NewBookInput) (*domain.Book, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockCatalogService) UpdateBook(ctx context.Context, id string, patch domain.BookPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

// MockLendingService
type MockLendingService struct {
	mock.Mock
}

func (m *MockLendingService) Borrow(ctx context.Context, bookID string, req domain.BorrowRequest) (*domain.BorrowRecord, error) {
	args := m.Called(ctx, bookID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRecord), args.Error(1)
}
func (m *MockLendingService) Return(ctx context.Context, borrowID string) error {
	args := m.Called(ctx, borrowID)
	return args.Error(0)
}
func (m *MockLendingService) ListBorrowed(ctx context.Context, email string) ([]domain.BorrowRecord, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BorrowRecord), args.Error(1)
}

// MockVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, token string) (*security.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.Identity), args.Error(1)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }
