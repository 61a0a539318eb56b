package api

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/trznica/internal/model"
	"github.com/erazemk/trznica/internal/store"
	"github.com/erazemk/trznica/internal/ws"
)

// NotificationsHandler handles inbox endpoints.
type NotificationsHandler struct {
	Store *store.Store
	Hub   *ws.Hub
}

// List handles GET /api/notifications.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	notifications, err := h.Store.NotificationsFor(r.Context(), claims.Username)
	if err != nil {
		slog.Error("failed to list notifications", "user", claims.Username, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	jsonResponse(w, http.StatusOK, notifications)
}

// Clear handles DELETE /api/notifications. Only the caller's own inbox is
// cleared.
func (h *NotificationsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	if err := h.Store.ClearNotificationsFor(r.Context(), claims.Username); err != nil {
		slog.Error("failed to clear notifications", "user", claims.Username, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to clear notifications")
		return
	}

	h.Hub.Send(claims.Username, ws.Event{Type: ws.EventInboxCleared})
	jsonResponse(w, http.StatusOK, map[string]string{"message": "notifications cleared"})
}
