package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/erazemk/trznica/internal/auth"
	"github.com/erazemk/trznica/internal/imaging"
	"github.com/erazemk/trznica/internal/model"
	"github.com/erazemk/trznica/internal/store"
	"github.com/erazemk/trznica/internal/ws"
)

// MarketplacePage handles GET /marketplace. Restricted-viewer roles (ngo,
// buyer) see the same catalog with delete/buy affordances withheld.
func (s *Server) MarketplacePage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	items, err := s.Store.ListItems(r.Context())
	if err != nil {
		slog.Error("failed to list items", "error", err)
	}

	s.Templates.Render(w, "marketplace.html", &struct {
		PageData
		Items      []model.Item
		Restricted bool
		Ordered    string
	}{
		PageData:   PageData{Title: "Marketplace", User: claims},
		Items:      items,
		Restricted: model.RestrictedViewer(claims.Role),
		Ordered:    r.URL.Query().Get("ordered"),
	})
}

// AddItemPage handles GET /add_item.
func (s *Server) AddItemPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	s.Templates.Render(w, "add_item.html", &struct {
		PageData
		Draft model.ItemDraft
	}{
		PageData: PageData{Title: "Add item", User: claims},
	})
}

// AddItemSubmit handles POST /add_item. The photo is optional; when present
// it is validated, downscaled and stored, and only its generated file name
// ends up in the items document.
func (s *Server) AddItemSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		http.Error(w, "file too large", http.StatusBadRequest)
		return
	}

	draft := model.ItemDraft{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Quantity:    r.FormValue("quantity"),
		Price:       r.FormValue("price"),
		Location:    r.FormValue("location"),
	}

	image := ""
	if file, _, err := r.FormFile("image"); err == nil {
		defer file.Close()

		result, err := imaging.Process(file)
		if err != nil {
			s.renderAddItemError(w, claims, draft, err.Error())
			return
		}
		image, err = s.Blobs.Save(result.Data)
		if err != nil {
			slog.Error("failed to save listing photo", "user", claims.Username, "error", err)
			http.Error(w, "failed to save photo", http.StatusInternalServerError)
			return
		}
	}

	item, err := s.Store.CreateItem(r.Context(), draft, claims.Username, image)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			s.renderAddItemError(w, claims, draft, verr.Error())
			return
		}
		slog.Error("failed to create item", "user", claims.Username, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("item listed", "user", claims.Username, "item", item.Name, "id", item.ID)
	http.Redirect(w, r, "/marketplace", http.StatusSeeOther)
}

func (s *Server) renderAddItemError(w http.ResponseWriter, claims *auth.Claims, draft model.ItemDraft, msg string) {
	w.WriteHeader(http.StatusBadRequest)
	s.Templates.Render(w, "add_item.html", &struct {
		PageData
		Draft model.ItemDraft
	}{
		PageData: PageData{Title: "Add item", User: claims, Error: msg},
		Draft:    draft,
	})
}

// DeleteItemSubmit handles POST /delete_item/{id}. Unknown ids are a silent
// no-op; only the listing's owner may remove it.
func (s *Server) DeleteItemSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	switch err := s.Store.DeleteItem(r.Context(), id, claims.Username); {
	case errors.Is(err, store.ErrNotFound):
		slog.Warn("delete of unknown item ignored", "user", claims.Username, "id", id)
	case errors.Is(err, store.ErrNotOwner):
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	case err != nil:
		slog.Error("failed to delete item", "user", claims.Username, "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	default:
		slog.Info("item removed", "user", claims.Username, "id", id)
	}

	http.Redirect(w, r, "/marketplace", http.StatusSeeOther)
}

// BuyItemSubmit handles POST /buy_item/{id}. A successful purchase redirects
// back to the marketplace carrying the item's location as a confirmation
// hint; an unknown id redirects with no side effect.
func (s *Server) BuyItemSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	receipt, err := s.Store.Purchase(r.Context(), id, claims.Username)
	if errors.Is(err, store.ErrNotFound) {
		slog.Warn("purchase of unknown item ignored", "user", claims.Username, "id", id)
		http.Redirect(w, r, "/marketplace", http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("purchase failed", "user", claims.Username, "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("item purchased", "buyer", claims.Username, "owner", receipt.Owner, "id", id)
	s.Hub.Send(receipt.Owner, ws.Event{Type: ws.EventNotification, Message: receipt.Message})

	http.Redirect(w, r, "/marketplace?ordered="+url.QueryEscape(receipt.Location), http.StatusSeeOther)
}

// LiveUpdates handles GET /ws.
func (s *Server) LiveUpdates(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	s.Hub.Serve(w, r, claims.Username)
}
