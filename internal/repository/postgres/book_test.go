package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readbooks-backend/internal/domain"
	"readbooks-backend/internal/repository/postgres"
)

const bookID = "6f1c1a9e-3b7d-4c55-9d7e-1f2a3b4c5d6e"

var bookRowColumns = []string{"id", "name", "image", "author", "category", "description", "rating", "quantity", "created_on"}

func newMockDB(t *testing.T) (*postgres.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return postgres.NewStore(db), mock
}

func TestBookRepository_Create(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()
	created := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	book := &domain.Book{
		Name:        "Dune",
		Image:       "dune.png",
		Author:      "Frank Herbert",
		Category:    "Novel",
		Description: "Spice",
		Rating:      4.5,
		Quantity:    3,
	}

	mock.ExpectQuery("INSERT INTO books").
		WithArgs(book.Name, book.Image, book.Author, book.Category, book.Description, book.Rating, book.Quantity).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(bookID, created))

	err := store.BookRepository.Create(ctx, book)
	require.NoError(t, err)
	assert.Equal(t, bookID, book.ID)
	assert.Equal(t, created, book.CreatedOn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_GetByID(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM books WHERE id = \\$1").
			WithArgs(bookID).
			WillReturnRows(sqlmock.NewRows(bookRowColumns).
				AddRow(bookID, "Dune", "dune.png", "Frank Herbert", "Novel", "Spice", 4.5, 3, time.Now()))

		book, err := store.BookRepository.GetByID(ctx, bookID)
		require.NoError(t, err)
		assert.Equal(t, "Dune", book.Name)
		assert.Equal(t, int32(3), book.Quantity)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM books WHERE id = \\$1").
			WithArgs(bookID).
			WillReturnRows(sqlmock.NewRows(bookRowColumns))

		book, err := store.BookRepository.GetByID(ctx, bookID)
		assert.Nil(t, book)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("DriverError", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM books WHERE id = \\$1").
			WithArgs(bookID).
			WillReturnError(errors.New("connection reset"))

		_, err := store.BookRepository.GetByID(ctx, bookID)
		assert.ErrorIs(t, err, domain.ErrStoreFailure)
		assert.Contains(t, err.Error(), "connection reset")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_List(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()

	t.Run("ByCategory", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM books WHERE category = \\$1 ORDER BY created_on").
			WithArgs("Novel").
			WillReturnRows(sqlmock.NewRows(bookRowColumns).
				AddRow(bookID, "Dune", "dune.png", "Frank Herbert", "Novel", "Spice", 4.5, 3, time.Now()))

		books, err := store.BookRepository.List(ctx, "Novel")
		require.NoError(t, err)
		assert.Len(t, books, 1)
	})

	t.Run("EmptyIsNotNil", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM books ORDER BY created_on").
			WillReturnRows(sqlmock.NewRows(bookRowColumns))

		books, err := store.BookRepository.List(ctx, "")
		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_Update(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()
	name := "Dune Messiah"
	qty := int32(7)

	t.Run("PartialPatch", func(t *testing.T) {
		mock.ExpectExec("UPDATE books SET name = \\$1, quantity = \\$2 WHERE id = \\$3").
			WithArgs(name, qty, bookID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.BookRepository.Update(ctx, bookID, domain.BookPatch{Name: &name, Quantity: &qty})
		assert.NoError(t, err)
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectExec("UPDATE books SET name = \\$1 WHERE id = \\$2").
			WithArgs(name, bookID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.BookRepository.Update(ctx, bookID, domain.BookPatch{Name: &name})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("EmptyPatch", func(t *testing.T) {
		err := store.BookRepository.Update(ctx, bookID, domain.BookPatch{})
		assert.ErrorIs(t, err, domain.ErrValidationFailed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_DecrementAvailable(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()
	query := "UPDATE books SET quantity = quantity - 1 WHERE id = \\$1 AND quantity > 0"

	t.Run("Taken", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(bookID).WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := store.BookRepository.DecrementAvailable(ctx, bookID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("NoCopyLeft", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(bookID).WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := store.BookRepository.DecrementAvailable(ctx, bookID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("DriverError", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(bookID).WillReturnError(errors.New("timeout"))

		ok, err := store.BookRepository.DecrementAvailable(ctx, bookID)
		assert.False(t, ok)
		assert.ErrorIs(t, err, domain.ErrStoreFailure)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_IncrementAvailable(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectExec("UPDATE books SET quantity = quantity \\+ 1 WHERE id = \\$1").
		WithArgs(bookID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := store.BookRepository.IncrementAvailable(ctx, bookID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_List(t *testing.T) {
	store, mock := newMockDB(t)

	mock.ExpectQuery("SELECT id, name, image FROM categories ORDER BY name").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "image"}).
			AddRow("c1", "History", "history.png").
			AddRow("c2", "Novel", "novel.png"))

	categories, err := store.CategoryRepository.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "History", categories[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	assert.NoError(t, postgres.NewStore(db).Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
