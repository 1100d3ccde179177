package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readbooks-backend/internal/domain"
)

const borrowID = "0b5e6c2d-8a41-4f0e-b3c9-7d2e1f0a9b8c"

var borrowRowColumns = []string{"id", "book_id", "email", "name", "return_date", "borrowed_at", "title", "image", "category"}

func sampleRecord() *domain.BorrowRecord {
	return &domain.BorrowRecord{
		BookID:     bookID,
		Email:      "ada@example.com",
		Name:       "Ada",
		ReturnDate: "2026-11-01",
		BorrowedAt: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC),
		Title:      "Dune",
		Image:      "dune.png",
		Category:   "Novel",
	}
}

func TestBorrowRepository_Create(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rec := sampleRecord()
		mock.ExpectQuery("INSERT INTO borrowed_books").
			WithArgs(rec.BookID, rec.Email, rec.Name, rec.ReturnDate, rec.BorrowedAt, rec.Title, rec.Image, rec.Category).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(borrowID))

		err := store.BorrowRepository.Create(ctx, rec)
		require.NoError(t, err)
		assert.Equal(t, borrowID, rec.ID)
	})

	t.Run("UniqueViolationIsDuplicateLoan", func(t *testing.T) {
		rec := sampleRecord()
		mock.ExpectQuery("INSERT INTO borrowed_books").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_borrowed_books_book_email"})

		err := store.BorrowRepository.Create(ctx, rec)
		assert.ErrorIs(t, err, domain.ErrDuplicateLoan)
		assert.NotErrorIs(t, err, domain.ErrStoreFailure)
	})

	t.Run("OtherFailureIsStoreFailure", func(t *testing.T) {
		rec := sampleRecord()
		mock.ExpectQuery("INSERT INTO borrowed_books").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: "08006"})

		err := store.BorrowRepository.Create(ctx, rec)
		assert.ErrorIs(t, err, domain.ErrStoreFailure)
		assert.NotErrorIs(t, err, domain.ErrDuplicateLoan)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBorrowRepository_FindActive(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()
	returnDate := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM borrowed_books WHERE book_id = \\$1 AND email = \\$2").
			WithArgs(bookID, "ada@example.com").
			WillReturnRows(sqlmock.NewRows(borrowRowColumns).
				AddRow(borrowID, bookID, "ada@example.com", "Ada", returnDate, time.Now(), "Dune", "dune.png", "Novel"))

		rec, err := store.BorrowRepository.FindActive(ctx, bookID, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, borrowID, rec.ID)
		assert.Equal(t, "2026-11-01", rec.ReturnDate)
	})

	t.Run("None", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM borrowed_books WHERE book_id = \\$1 AND email = \\$2").
			WithArgs(bookID, "bob@example.com").
			WillReturnRows(sqlmock.NewRows(borrowRowColumns))

		_, err := store.BorrowRepository.FindActive(ctx, bookID, "bob@example.com")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBorrowRepository_ListByEmail(t *testing.T) {
	store, mock := newMockDB(t)
	returnDate := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM borrowed_books WHERE email = \\$1 ORDER BY borrowed_at DESC").
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows(borrowRowColumns).
			AddRow(borrowID, bookID, "ada@example.com", "Ada", returnDate, time.Now(), "Dune", "dune.png", "Novel"))

	records, err := store.BorrowRepository.ListByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Dune", records[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBorrowRepository_ListDueBefore(t *testing.T) {
	store, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM borrowed_books WHERE return_date < \\$1 ORDER BY return_date").
		WithArgs("2026-10-19").
		WillReturnRows(sqlmock.NewRows(borrowRowColumns))

	records, err := store.BorrowRepository.ListDueBefore(context.Background(), "2026-10-19")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBorrowRepository_Delete(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM borrowed_books WHERE id = \\$1").
		WithArgs(borrowID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	ok, err := store.BorrowRepository.Delete(ctx, borrowID)
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec("DELETE FROM borrowed_books WHERE id = \\$1").
		WithArgs(borrowID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	ok, err = store.BorrowRepository.Delete(ctx, borrowID)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}
