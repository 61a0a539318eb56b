package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/trznica/internal/auth"
	"github.com/erazemk/trznica/internal/store"
)

// SignupPage handles GET /signup.
func (s *Server) SignupPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "signup.html", &PageData{Title: "Sign up"})
}

// SignupSubmit handles POST /signup. Failures redirect back to the signup
// page without detail; the error kind is logged instead.
func (s *Server) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")
	role := r.FormValue("role")

	err := s.Store.RegisterUser(r.Context(), username, password, role)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateUser):
			slog.Warn("signup rejected", "user", username, "reason", "duplicate username")
		case errors.Is(err, store.ErrInvalidRole):
			slog.Warn("signup rejected", "user", username, "reason", "invalid role", "role", role)
		default:
			slog.Error("signup failed", "user", username, "error", err)
		}
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}

	slog.Info("user registered", "user", username, "role", role)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Log in"})
}

// LoginSubmit handles POST /login. The session role comes from the stored
// credential record, never from the request.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	role, err := s.Store.Authenticate(r.Context(), username, password)
	if err != nil {
		slog.Warn("login rejected", "user", username)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, username, role)
	if err != nil {
		slog.Error("failed to generate session token", "user", username, "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenExpiry.Seconds()),
	})

	http.Redirect(w, r, "/marketplace", http.StatusSeeOther)
}

// Logout handles GET /logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
