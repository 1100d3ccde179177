package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"readbooks-backend/internal/domain"
	"readbooks-backend/internal/logger"
	"readbooks-backend/internal/repository"
)

const bookColumns = `id, name, image, author, category, description, rating, quantity, created_on`

type bookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*domain.Book, error) {
	b := &domain.Book{}
	if err := row.Scan(&b.ID, &b.Name, &b.Image, &b.Author, &b.Category, &b.Description, &b.Rating, &b.Quantity, &b.CreatedOn); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookRepository) Create(ctx context.Context, b *domain.Book) error {
	query := `INSERT INTO books (name, image, author, category, description, rating, quantity)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_on`
	logger.DatabaseCall("books.create", query)
	err := r.db.QueryRowContext(ctx, query, b.Name, b.Image, b.Author, b.Category, b.Description, b.Rating, b.Quantity).Scan(&b.ID, &b.CreatedOn)
	logger.DatabaseResult("books.create", 1, err)
	if err != nil {
		return domain.StoreError("insert book", err)
	}
	return nil
}

func (r *bookRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	logger.DatabaseCall("books.get", query, "id", id)
	b, err := scanBook(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		logger.DatabaseResult("books.get", 0, err)
		return nil, domain.StoreError("get book", err)
	}
	return b, nil
}

func (r *bookRepository) List(ctx context.Context, category string) ([]domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books`
	var args []any
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY created_on`

	logger.DatabaseCall("books.list", query, "category", category)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("books.list", 0, err)
		return nil, domain.StoreError("list books", err)
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, domain.StoreError("scan book", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError("iterate books", err)
	}
	return books, nil
}

func (r *bookRepository) Update(ctx context.Context, id string, p domain.BookPatch) error {
	var sets []string
	var args []any
	argIdx := 1
	set := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}
	if p.Name != nil {
		set("name", *p.Name)
	}
	if p.Image != nil {
		set("image", *p.Image)
	}
	if p.Author != nil {
		set("author", *p.Author)
	}
	if p.Category != nil {
		set("category", *p.Category)
	}
	if p.Description != nil {
		set("description", *p.Description)
	}
	if p.Rating != nil {
		set("rating", *p.Rating)
	}
	if p.Quantity != nil {
		set("quantity", *p.Quantity)
	}
	if len(sets) == 0 {
		return domain.Invalid("no fields to update")
	}

	query := fmt.Sprintf(`UPDATE books SET %s WHERE id = $%d`, strings.Join(sets, ", "), argIdx)
	args = append(args, id)

	logger.DatabaseCall("books.update", query, "id", id)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("books.update", 0, err)
		return domain.StoreError("update book", err)
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("books.update", n, err)
	if err != nil {
		return domain.StoreError("update book", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookRepository) DecrementAvailable(ctx context.Context, id string) (bool, error) {
	query := `UPDATE books SET quantity = quantity - 1 WHERE id = $1 AND quantity > 0`
	return r.adjust(ctx, "books.decrement", query, id)
}

func (r *bookRepository) IncrementAvailable(ctx context.Context, id string) (bool, error) {
	query := `UPDATE books SET quantity = quantity + 1 WHERE id = $1`
	return r.adjust(ctx, "books.increment", query, id)
}

func (r *bookRepository) adjust(ctx context.Context, op, query, id string) (bool, error) {
	logger.DatabaseCall(op, query, "id", id)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.DatabaseResult(op, 0, err)
		return false, domain.StoreError(op, err)
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult(op, n, err)
	if err != nil {
		return false, domain.StoreError(op, err)
	}
	return n == 1, nil
}
