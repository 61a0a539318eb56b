package web

import (
	"net/http"

	"github.com/erazemk/trznica/internal/blob"
	"github.com/erazemk/trznica/internal/store"
	"github.com/erazemk/trznica/internal/ws"
	webembed "github.com/erazemk/trznica/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(st *store.Store, blobs *blob.Dir, hub *ws.Hub, jwtSecret string) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Store:     st,
		Blobs:     blobs,
		Hub:       hub,
		Templates: templates,
		JWTSecret: jwtSecret,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(jwtSecret)

	// Static assets and stored listing photos.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", blobs.FileServer()))

	// Public routes.
	mux.HandleFunc("GET /{$}", s.HomePage)
	mux.HandleFunc("GET /signup", s.SignupPage)
	mux.HandleFunc("POST /signup", s.SignupSubmit)
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("GET /logout", s.Logout)
	mux.HandleFunc("GET /education", s.EducationPage)
	mux.HandleFunc("GET /crisis", s.CrisisPage)

	// Authenticated routes.
	mux.Handle("GET /marketplace", cookieAuth(http.HandlerFunc(s.MarketplacePage)))
	mux.Handle("GET /add_item", cookieAuth(http.HandlerFunc(s.AddItemPage)))
	mux.Handle("POST /add_item", cookieAuth(http.HandlerFunc(s.AddItemSubmit)))
	mux.Handle("POST /delete_item/{id}", cookieAuth(http.HandlerFunc(s.DeleteItemSubmit)))
	mux.Handle("POST /buy_item/{id}", cookieAuth(http.HandlerFunc(s.BuyItemSubmit)))
	mux.Handle("GET /notification", cookieAuth(http.HandlerFunc(s.NotificationsPage)))
	mux.Handle("POST /clear_notifications", cookieAuth(http.HandlerFunc(s.ClearNotificationsSubmit)))
	mux.Handle("GET /ws", cookieAuth(http.HandlerFunc(s.LiveUpdates)))

	return mux, nil
}
