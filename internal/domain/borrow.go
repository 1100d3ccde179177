package domain

import "time"

// ReturnDateLayout is the wire and storage format of a borrow record's due date.
const ReturnDateLayout = "2006-01-02"

// BorrowRecord is an active loan. Returning the book deletes the record.
type BorrowRecord struct {
	ID         string    `json:"_id"`
	BookID     string    `json:"bookId"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	ReturnDate string    `json:"returnDate"`
	BorrowedAt time.Time `json:"borrowedAt"`
	// Snapshot of the book taken when the loan was created.
	Title    string `json:"title"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

// BorrowRequest is the borrower-supplied part of a borrow.
type BorrowRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	ReturnDate string `json:"returnDate"`
}
