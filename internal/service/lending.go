package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"readbooks-backend/internal/domain"
	"readbooks-backend/internal/logger"
	"readbooks-backend/internal/repository"
)

type lendingService struct {
	bookRepo   repository.BookRepository
	borrowRepo repository.BorrowRepository
	now        func() time.Time
}

func NewLendingService(bookRepo repository.BookRepository, borrowRepo repository.BorrowRepository) LendingService {
	return &lendingService{
		bookRepo:   bookRepo,
		borrowRepo: borrowRepo,
		now:        time.Now,
	}
}

// Borrow lends one copy of a book. The availability and duplicate checks only fail fast;
// concurrent borrowers are settled by the conditioned decrement and the unique (book, email) index.
func (s *lendingService) Borrow(ctx context.Context, bookID string, req domain.BorrowRequest) (*domain.BorrowRecord, error) {
	if !ValidID(bookID) {
		return nil, domain.ErrInvalidReference
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if missing := missingBorrowFields(req); len(missing) > 0 {
		return nil, &domain.MissingFieldsError{Fields: missing}
	}
	returnDate, err := ParseReturnDate(req.ReturnDate)
	if err != nil {
		return nil, err
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book.Quantity <= 0 {
		return nil, domain.ErrUnavailable
	}

	_, err = s.borrowRepo.FindActive(ctx, bookID, req.Email)
	switch {
	case err == nil:
		return nil, domain.ErrAlreadyBorrowed
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	taken, err := s.bookRepo.DecrementAvailable(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !taken {
		// Lost the race for the last copy (or the book vanished) after the fast path.
		return nil, domain.ErrUnavailable
	}

	record := &domain.BorrowRecord{
		BookID:     bookID,
		Email:      req.Email,
		Name:       req.Name,
		ReturnDate: returnDate,
		BorrowedAt: s.now().UTC(),
		Title:      book.Name,
		Image:      book.Image,
		Category:   book.Category,
	}
	if err := s.borrowRepo.Create(ctx, record); err != nil {
		return nil, s.recoverFailedInsert(ctx, record, err)
	}

	logger.InfoContext(ctx, "Book borrowed", "book_id", bookID, "borrow_id", record.ID, "email", record.Email)
	return record, nil
}

// recoverFailedInsert handles a record insert that failed after the copy was taken.
// A duplicate means no record was written, so the copy is put back. Anything else may or
// may not have been written and is left for an operator.
func (s *lendingService) recoverFailedInsert(ctx context.Context, record *domain.BorrowRecord, insertErr error) error {
	if errors.Is(insertErr, domain.ErrDuplicateLoan) {
		restored, err := s.bookRepo.IncrementAvailable(ctx, record.BookID)
		if err != nil || !restored {
			logger.InvariantViolation(ctx, "Failed to restore copy after duplicate borrow",
				"book_id", record.BookID, "email", record.Email, "error", err)
		}
		return domain.ErrAlreadyBorrowed
	}

	logger.InvariantViolation(ctx, "Quantity decremented but borrow record not created",
		"book_id", record.BookID, "email", record.Email, "error", insertErr)
	if errors.Is(insertErr, domain.ErrStoreFailure) {
		return insertErr
	}
	return domain.StoreError("insert borrow record", insertErr)
}

// Return credits the copy back before deleting the record.
func (s *lendingService) Return(ctx context.Context, borrowID string) error {
	if !ValidID(borrowID) {
		return domain.ErrInvalidReference
	}

	record, err := s.borrowRepo.GetByID(ctx, borrowID)
	if err != nil {
		return err
	}

	restored, err := s.bookRepo.IncrementAvailable(ctx, record.BookID)
	if err != nil {
		return err
	}
	if !restored {
		logger.WarnContext(ctx, "Returned book no longer in catalog, closing loan anyway",
			"book_id", record.BookID, "borrow_id", borrowID)
	}

	deleted, err := s.borrowRepo.Delete(ctx, borrowID)
	if err != nil {
		logger.InvariantViolation(ctx, "Quantity incremented but borrow record not deleted",
			"book_id", record.BookID, "borrow_id", borrowID, "error", err)
		return err
	}
	if !deleted {
		logger.InvariantViolation(ctx, "Borrow record closed concurrently, copy credited twice",
			"book_id", record.BookID, "borrow_id", borrowID)
		return domain.ErrNotFound
	}

	logger.InfoContext(ctx, "Book returned", "book_id", record.BookID, "borrow_id", borrowID, "email", record.Email)
	return nil
}

func (s *lendingService) ListBorrowed(ctx context.Context, email string) ([]domain.BorrowRecord, error) {
	if email == "" {
		return nil, &domain.MissingFieldsError{Fields: []string{"email"}}
	}
	return s.borrowRepo.ListByEmail(ctx, email)
}

func missingBorrowFields(req domain.BorrowRequest) []string {
	var missing []string
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(req.ReturnDate) == "" {
		missing = append(missing, "returnDate")
	}
	return missing
}

// ParseReturnDate accepts a plain date or an RFC 3339 timestamp and normalizes it to
// domain.ReturnDateLayout.
func ParseReturnDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(domain.ReturnDateLayout, value); err == nil {
		return t.Format(domain.ReturnDateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC().Format(domain.ReturnDateLayout), nil
	}
	return "", domain.Invalid("returnDate must be a date (YYYY-MM-DD)")
}

// ValidID reports whether id is a syntactically valid store reference.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
