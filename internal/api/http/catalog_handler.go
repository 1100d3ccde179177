package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"readbooks-backend/internal/domain"
	"readbooks-backend/internal/service"
)

type insertedResponse struct {
	InsertedID string `json:"insertedId"`
}

// CatalogHandler serves categories and books.
type CatalogHandler struct {
	svc service.CatalogService
}

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err, errorMessages{failure: "Failed to fetch categories"})
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.ListBooks(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, err, errorMessages{failure: "Failed to fetch books"})
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *CatalogHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.svc.GetBook(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err, errorMessages{
			invalidID: "Invalid Book ID",
			notFound:  "Book not found",
			failure:   "Failed to fetch book",
		})
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *CatalogHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	msgs := errorMessages{failure: "Failed to add book"}

	var in service.NewBookInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err, msgs)
		return
	}
	book, err := h.svc.CreateBook(r.Context(), in)
	if err != nil {
		writeError(w, r, err, msgs)
		return
	}
	writeJSON(w, http.StatusOK, insertedResponse{InsertedID: book.ID})
}

func (h *CatalogHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	msgs := errorMessages{
		invalidID: "Invalid Book ID",
		notFound:  "Book not found",
		failure:   "Failed to update book",
	}

	var patch domain.BookPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err, msgs)
		return
	}
	if err := h.svc.UpdateBook(r.Context(), mux.Vars(r)["id"], patch); err != nil {
		writeError(w, r, err, msgs)
		return
	}
	writeMessage(w, http.StatusOK, "Book updated successfully")
}
