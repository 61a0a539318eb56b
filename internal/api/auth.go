package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/trznica/internal/auth"
	"github.com/erazemk/trznica/internal/store"
)

// AuthHandler handles signup and login endpoints.
type AuthHandler struct {
	Store     *store.Store
	JWTSecret string
}

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.Store.RegisterUser(r.Context(), req.Username, req.Password, req.Role)
	switch {
	case errors.Is(err, store.ErrDuplicateUser):
		jsonError(w, http.StatusConflict, "username already taken")
		return
	case errors.Is(err, store.ErrInvalidRole):
		jsonError(w, http.StatusBadRequest, "role must be one of farmer, business, ngo, buyer")
		return
	case errors.Is(err, store.ErrInvalidCredentials):
		jsonError(w, http.StatusBadRequest, "username and password required")
		return
	case err != nil:
		slog.Error("signup failed", "user", req.Username, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	jsonResponse(w, http.StatusCreated, map[string]string{"message": "registered"})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role, err := h.Store.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		jsonError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, req.Username, role)
	if err != nil {
		slog.Error("failed to generate token", "user", req.Username, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"token": token, "role": role})
}
