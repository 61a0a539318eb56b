package api

import (
	"net/http"

	"github.com/erazemk/trznica/internal/store"
	"github.com/erazemk/trznica/internal/ws"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(st *store.Store, hub *ws.Hub, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Store: st, JWTSecret: jwtSecret}
	itemsHandler := &ItemsHandler{Store: st, Hub: hub}
	notificationsHandler := &NotificationsHandler{Store: st, Hub: hub}

	authMW := AuthMiddleware(jwtSecret)
	requireSeller := RequireSeller()

	// Public: signup and login.
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Catalog.
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))
	mux.Handle("POST /api/items/{id}/buy", authMW(http.HandlerFunc(itemsHandler.Buy)))

	// Inbox (seller roles only).
	mux.Handle("GET /api/notifications", authMW(requireSeller(http.HandlerFunc(notificationsHandler.List))))
	mux.Handle("DELETE /api/notifications", authMW(http.HandlerFunc(notificationsHandler.Clear)))

	return mux
}
