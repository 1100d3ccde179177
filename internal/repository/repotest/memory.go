// Package repotest provides an in-memory implementation of the repository interfaces for
// tests. Its conditioned quantity updates and the (book, email) uniqueness check are atomic,
// matching the guarantees of the PostgreSQL store.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"readbooks-backend/internal/domain"
	"readbooks-backend/internal/repository"
)

type Store struct {
	mu         sync.Mutex
	books      map[string]*domain.Book
	borrows    map[string]*domain.BorrowRecord
	categories []domain.Category
}

func NewStore() *Store {
	return &Store{
		books:   map[string]*domain.Book{},
		borrows: map[string]*domain.BorrowRecord{},
	}
}

func (s *Store) Books() repository.BookRepository          { return bookRepo{s} }
func (s *Store) Borrows() repository.BorrowRepository      { return borrowRepo{s} }
func (s *Store) Categories() repository.CategoryRepository { return categoryRepo{s} }

// AddBook seeds a book with the given available quantity and returns its id.
func (s *Store) AddBook(name, category string, quantity int32) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.books[id] = &domain.Book{
		ID:        id,
		Name:      name,
		Image:     name + ".png",
		Category:  category,
		Quantity:  quantity,
		CreatedOn: time.Now().UTC(),
	}
	return id
}

func (s *Store) AddCategory(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, domain.Category{ID: uuid.NewString(), Name: name})
}

// AddLoan seeds a borrow record without touching the book quantity.
func (s *Store) AddLoan(rec domain.BorrowRecord) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = uuid.NewString()
	s.borrows[rec.ID] = &rec
	return rec.ID
}

func (s *Store) Quantity(bookID string) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.books[bookID]; ok {
		return b.Quantity
	}
	return -1
}

func (s *Store) ActiveLoans(bookID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, rec := range s.borrows {
		if rec.BookID == bookID {
			n++
		}
	}
	return n
}

type bookRepo struct{ s *Store }

func (r bookRepo) Create(ctx context.Context, book *domain.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	book.ID = uuid.NewString()
	book.CreatedOn = time.Now().UTC()
	cp := *book
	r.s.books[book.ID] = &cp
	return nil
}

func (r bookRepo) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	book, ok := r.s.books[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *book
	return &cp, nil
}

func (r bookRepo) List(ctx context.Context, category string) ([]domain.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.Book{}
	for _, book := range r.s.books {
		if category == "" || book.Category == category {
			out = append(out, *book)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedOn.Before(out[j].CreatedOn) })
	return out, nil
}

func (r bookRepo) Update(ctx context.Context, id string, p domain.BookPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	book, ok := r.s.books[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Name != nil {
		book.Name = *p.Name
	}
	if p.Image != nil {
		book.Image = *p.Image
	}
	if p.Author != nil {
		book.Author = *p.Author
	}
	if p.Category != nil {
		book.Category = *p.Category
	}
	if p.Description != nil {
		book.Description = *p.Description
	}
	if p.Rating != nil {
		book.Rating = *p.Rating
	}
	if p.Quantity != nil {
		book.Quantity = *p.Quantity
	}
	return nil
}

func (r bookRepo) DecrementAvailable(ctx context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	book, ok := r.s.books[id]
	if !ok || book.Quantity <= 0 {
		return false, nil
	}
	book.Quantity--
	return true, nil
}

func (r bookRepo) IncrementAvailable(ctx context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	book, ok := r.s.books[id]
	if !ok {
		return false, nil
	}
	book.Quantity++
	return true, nil
}

type categoryRepo struct{ s *Store }

func (r categoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := append([]domain.Category{}, r.s.categories...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type borrowRepo struct{ s *Store }

func (r borrowRepo) Create(ctx context.Context, rec *domain.BorrowRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.borrows {
		if existing.BookID == rec.BookID && existing.Email == rec.Email {
			return domain.ErrDuplicateLoan
		}
	}
	rec.ID = uuid.NewString()
	cp := *rec
	r.s.borrows[rec.ID] = &cp
	return nil
}

func (r borrowRepo) GetByID(ctx context.Context, id string) (*domain.BorrowRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.borrows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r borrowRepo) FindActive(ctx context.Context, bookID, email string) (*domain.BorrowRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.borrows {
		if rec.BookID == bookID && rec.Email == email {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r borrowRepo) ListByEmail(ctx context.Context, email string) ([]domain.BorrowRecord, error) {
	return r.filter(func(rec *domain.BorrowRecord) bool { return rec.Email == email }), nil
}

func (r borrowRepo) ListDueBefore(ctx context.Context, date string) ([]domain.BorrowRecord, error) {
	return r.filter(func(rec *domain.BorrowRecord) bool { return rec.ReturnDate < date }), nil
}

func (r borrowRepo) filter(keep func(*domain.BorrowRecord) bool) []domain.BorrowRecord {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.BorrowRecord{}
	for _, rec := range r.s.borrows {
		if keep(rec) {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BorrowedAt.After(out[j].BorrowedAt) })
	return out
}

func (r borrowRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.borrows[id]; !ok {
		return false, nil
	}
	delete(r.s.borrows, id)
	return true, nil
}
