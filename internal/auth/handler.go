package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/libroshare/backend/internal/middleware"
	"github.com/libroshare/backend/internal/models"
)

// Handler holds auth-related HTTP handlers.
type Handler struct {
	svc      *Service
	validate *validator.Validate
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

// Register creates a new user.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"message":"Invalid JSON"}`, http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, `{"message":"email, username, and password are required"}`, http.StatusBadRequest)
		return
	}

	err := h.svc.Register(r.Context(), req.Email, req.Username, req.Password)
	if errors.Is(err, ErrEmailTaken) {
		http.Error(w, `{"message":"User creation failed: Email already exists"}`, http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, `{"message":"internal error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(`{"message":"User created successfully"}`))
}

// Login authenticates a user and returns a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"Invalid JSON"}`, http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, `{"error":"email and password are required"}`, http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		http.Error(w, `{"error":"Invalid credentials"}`, http.StatusForbidden)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// Me returns the authenticated user's sanitized profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.Profile(r.Context(), middleware.TokenFromContext(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// UpdateMe applies a partial update to the authenticated user.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var patch models.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, `{"message":"Invalid JSON"}`, http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdateProfile(r.Context(), middleware.TokenFromContext(r.Context()), patch); err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"message":"User updated successfully"}`))
}

// DeleteMe deletes the authenticated user's account.
func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAccount(r.Context(), middleware.TokenFromContext(r.Context())); err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"message":"User deleted successfully"}`))
}

// PublicProfile returns any user's sanitized profile, no token needed.
func (h *Handler) PublicProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	profile, err := h.svc.PublicProfile(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// writeError maps service errors to the HTTP surface. Missing accounts
// answer 403, not 404, so the API does not reveal whether an id exists.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTokenExpired):
		http.Error(w, `{"error":"Token expired"}`, http.StatusForbidden)
	case errors.Is(err, ErrTokenInvalid):
		http.Error(w, `{"error":"Invalid token"}`, http.StatusForbidden)
	case errors.Is(err, ErrUserNotFound):
		http.Error(w, `{"error":"User not found"}`, http.StatusForbidden)
	default:
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
	}
}
