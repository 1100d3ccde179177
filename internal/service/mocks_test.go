package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"readbooks-backend/internal/domain"
)

// MockBookRepo
type MockBookRepo struct {
	mock.Mock
}

func (m *MockBookRepo) Create(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}
func (m *MockBookRepo) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookRepo) List(ctx context.Context, category string) ([]domain.Book, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]domain.Book), args.Error(1)
}
func (m *MockBookRepo) Update(ctx context.Context, id string, patch domain.BookPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}
func (m *MockBookRepo) DecrementAvailable(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookRepo) IncrementAvailable(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockCategoryRepo
type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

// MockBorrowRepo
type MockBorrowRepo struct {
	mock.Mock
}

func (m *MockBorrowRepo) Create(ctx context.Context, record *domain.BorrowRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
func (m *MockBorrowRepo) GetByID(ctx context.Context, id string) (*domain.BorrowRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRecord), args.Error(1)
}
func (m *MockBorrowRepo) FindActive(ctx context.Context, bookID, email string) (*domain.BorrowRecord, error) {
	args := m.Called(ctx, bookID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRecord), args.Error(1)
}
func (m *MockBorrowRepo) ListByEmail(ctx context.Context, email string) ([]domain.BorrowRecord, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.BorrowRecord), args.Error(1)
}
func (m *MockBorrowRepo) ListDueBefore(ctx context.Context, date string) ([]domain.BorrowRecord, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]domain.BorrowRecord), args.Error(1)
}
func (m *MockBorrowRepo) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
