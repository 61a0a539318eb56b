package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/trznica/internal/model"
	"github.com/erazemk/trznica/internal/ws"
)

// NotificationsPage handles GET /notification. Only seller roles (farmer,
// business) have an inbox to read; others are sent back to the marketplace.
func (s *Server) NotificationsPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	if !model.Seller(claims.Role) {
		http.Redirect(w, r, "/marketplace", http.StatusSeeOther)
		return
	}

	notifications, err := s.Store.NotificationsFor(r.Context(), claims.Username)
	if err != nil {
		slog.Error("failed to list notifications", "user", claims.Username, "error", err)
	}

	s.Templates.Render(w, "notifications.html", &struct {
		PageData
		Notifications []model.Notification
	}{
		PageData:      PageData{Title: "Notifications", User: claims},
		Notifications: notifications,
	})
}

// ClearNotificationsSubmit handles POST /clear_notifications. Only the
// caller's own inbox is ever cleared.
func (s *Server) ClearNotificationsSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	if err := s.Store.ClearNotificationsFor(r.Context(), claims.Username); err != nil {
		slog.Error("failed to clear notifications", "user", claims.Username, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Hub.Send(claims.Username, ws.Event{Type: ws.EventInboxCleared})
	http.Redirect(w, r, "/notification", http.StatusSeeOther)
}
