package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"readbooks-backend/internal/domain"
	"readbooks-backend/internal/logger"
	"readbooks-backend/internal/repository"
)

const borrowColumns = `id, book_id, email, name, return_date, borrowed_at, title, image, category`

type borrowRepository struct {
	db *sql.DB
}

func NewBorrowRepository(db *sql.DB) repository.BorrowRepository {
	return &borrowRepository{db: db}
}

func scanBorrow(row rowScanner) (*domain.BorrowRecord, error) {
	rec := &domain.BorrowRecord{}
	var returnDate time.Time
	if err := row.Scan(&rec.ID, &rec.BookID, &rec.Email, &rec.Name, &returnDate, &rec.BorrowedAt, &rec.Title, &rec.Image, &rec.Category); err != nil {
		return nil, err
	}
	rec.ReturnDate = returnDate.Format(domain.ReturnDateLayout)
	return rec, nil
}

func (r *borrowRepository) Create(ctx context.Context, rec *domain.BorrowRecord) error {
	query := `INSERT INTO borrowed_books (book_id, email, name, return_date, borrowed_at, title, image, category)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	logger.DatabaseCall("borrowed_books.create", query, "book_id", rec.BookID, "email", rec.Email)
	err := r.db.QueryRowContext(ctx, query, rec.BookID, rec.Email, rec.Name, rec.ReturnDate, rec.BorrowedAt, rec.Title, rec.Image, rec.Category).Scan(&rec.ID)
	logger.DatabaseResult("borrowed_books.create", 1, err)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateLoan
	}
	if err != nil {
		return domain.StoreError("insert borrow record", err)
	}
	return nil
}

func (r *borrowRepository) GetByID(ctx context.Context, id string) (*domain.BorrowRecord, error) {
	query := `SELECT ` + borrowColumns + ` FROM borrowed_books WHERE id = $1`
	return r.getOne(ctx, "borrowed_books.get", query, id)
}

func (r *borrowRepository) FindActive(ctx context.Context, bookID, email string) (*domain.BorrowRecord, error) {
	query := `SELECT ` + borrowColumns + ` FROM borrowed_books WHERE book_id = $1 AND email = $2`
	return r.getOne(ctx, "borrowed_books.find_active", query, bookID, email)
}

func (r *borrowRepository) getOne(ctx context.Context, op, query string, args ...any) (*domain.BorrowRecord, error) {
	logger.DatabaseCall(op, query, "args", args)
	rec, err := scanBorrow(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		logger.DatabaseResult(op, 0, err)
		return nil, domain.StoreError(op, err)
	}
	return rec, nil
}

func (r *borrowRepository) ListByEmail(ctx context.Context, email string) ([]domain.BorrowRecord, error) {
	query := `SELECT ` + borrowColumns + ` FROM borrowed_books WHERE email = $1 ORDER BY borrowed_at DESC`
	return r.list(ctx, "borrowed_books.list_by_email", query, email)
}

func (r *borrowRepository) ListDueBefore(ctx context.Context, date string) ([]domain.BorrowRecord, error) {
	query := `SELECT ` + borrowColumns + ` FROM borrowed_books WHERE return_date < $1 ORDER BY return_date`
	return r.list(ctx, "borrowed_books.list_due_before", query, date)
}

func (r *borrowRepository) list(ctx context.Context, op, query string, args ...any) ([]domain.BorrowRecord, error) {
	logger.DatabaseCall(op, query, "args", args)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult(op, 0, err)
		return nil, domain.StoreError(op, err)
	}
	defer rows.Close()

	records := []domain.BorrowRecord{}
	for rows.Next() {
		rec, err := scanBorrow(rows)
		if err != nil {
			return nil, domain.StoreError(op, err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError(op, err)
	}
	return records, nil
}

func (r *borrowRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM borrowed_books WHERE id = $1`
	logger.DatabaseCall("borrowed_books.delete", query, "id", id)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.DatabaseResult("borrowed_books.delete", 0, err)
		return false, domain.StoreError("delete borrow record", err)
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("borrowed_books.delete", n, err)
	if err != nil {
		return false, domain.StoreError("delete borrow record", err)
	}
	return n == 1, nil
}
