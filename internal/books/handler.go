package books

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/libroshare/backend/internal/auth"
	"github.com/libroshare/backend/internal/middleware"
	"github.com/libroshare/backend/internal/models"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Handler holds book HTTP handlers.
type Handler struct {
	svc      *Service
	validate *validator.Validate
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

// Create posts a new book.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title and author are required"})
		return
	}

	book, err := h.svc.Create(r.Context(), middleware.TokenFromContext(r.Context()), req.Title, req.Author, req.Link)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

// List returns all posted books.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if list == nil {
		list = []models.Book{}
	}
	writeJSON(w, http.StatusOK, list)
}

// Get returns one book by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	book, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// Update applies a partial update to a book the caller posted.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.BookPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	if err := h.svc.Update(r.Context(), middleware.TokenFromContext(r.Context()), chi.URLParam(r, "id"), patch); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Book updated successfully"})
}

// Delete removes a book the caller posted.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), middleware.TokenFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Book deleted successfully"})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Token expired"})
	case errors.Is(err, auth.ErrTokenInvalid):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Invalid token"})
	case errors.Is(err, auth.ErrUserNotFound):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "User not found"})
	case errors.Is(err, ErrBookNotFound):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Book not found"})
	case errors.Is(err, ErrNotOwner):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Book belongs to another user"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
