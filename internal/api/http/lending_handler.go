package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"readbooks-backend/internal/domain"
	"readbooks-backend/internal/security"
	"readbooks-backend/internal/service"
)

type borrowResponse struct {
	Message  string `json:"message"`
	BorrowID string `json:"borrowId"`
}

// LendingHandler serves the borrow, return and borrowed-list endpoints.
type LendingHandler struct {
	svc service.LendingService
}

func NewLendingHandler(svc service.LendingService) *LendingHandler {
	return &LendingHandler{svc: svc}
}

func (h *LendingHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	msgs := errorMessages{
		invalidID: "Invalid Book ID",
		notFound:  "Book not found",
		failure:   "Failed to borrow book",
	}

	var req domain.BorrowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, msgs)
		return
	}
	record, err := h.svc.Borrow(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, r, err, msgs)
		return
	}
	writeJSON(w, http.StatusOK, borrowResponse{
		Message:  "Book borrowed successfully",
		BorrowID: record.ID,
	})
}

// ListBorrowed returns the loans of the caller. The declared email must match the token.
func (h *LendingHandler) ListBorrowed(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeMessage(w, http.StatusBadRequest, "Email required")
		return
	}

	identity, _ := IdentityFromContext(r.Context())
	if err := security.RequireIdentity(identity, email); err != nil {
		writeError(w, r, err, errorMessages{})
		return
	}

	records, err := h.svc.ListBorrowed(r.Context(), email)
	if err != nil {
		writeError(w, r, err, errorMessages{failure: "Failed to fetch borrowed books"})
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *LendingHandler) Return(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Return(r.Context(), mux.Vars(r)["borrowId"])
	if err != nil {
		writeError(w, r, err, errorMessages{
			invalidID: "Invalid Borrow ID",
			notFound:  "Borrow record not found",
			failure:   "Failed to return book",
		})
		return
	}
	writeMessage(w, http.StatusOK, "Book returned successfully")
}
