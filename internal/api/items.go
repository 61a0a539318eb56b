package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/trznica/internal/model"
	"github.com/erazemk/trznica/internal/store"
	"github.com/erazemk/trznica/internal/ws"
)

// ItemsHandler handles catalog endpoints.
type ItemsHandler struct {
	Store *store.Store
	Hub   *ws.Hub
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListItems(r.Context())
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items. The owner always comes from the session.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var draft model.ItemDraft
	if err := decodeJSON(r, &draft); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Store.CreateItem(r.Context(), draft, claims.Username, "")
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			jsonResponse(w, http.StatusBadRequest, map[string]any{
				"error":  "validation failed",
				"fields": verr.Fields,
			})
			return
		}
		slog.Error("failed to create item", "user", claims.Username, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	switch err := h.Store.DeleteItem(r.Context(), id, claims.Username); {
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, "item not found")
		return
	case errors.Is(err, store.ErrNotOwner):
		jsonError(w, http.StatusForbidden, "only the owner can remove a listing")
		return
	case err != nil:
		slog.Error("failed to delete item", "user", claims.Username, "id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// Buy handles POST /api/items/{id}/buy.
func (h *ItemsHandler) Buy(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	receipt, err := h.Store.Purchase(r.Context(), id, claims.Username)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		slog.Error("purchase failed", "user", claims.Username, "id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to buy item")
		return
	}

	h.Hub.Send(receipt.Owner, ws.Event{Type: ws.EventNotification, Message: receipt.Message})

	jsonResponse(w, http.StatusOK, map[string]any{
		"item_id":  receipt.ItemID,
		"location": receipt.Location,
	})
}
