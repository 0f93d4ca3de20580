package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DakshSitapara/wishlist/internal/domain"
	"github.com/DakshSitapara/wishlist/internal/service"
	"github.com/DakshSitapara/wishlist/pkg/httputil"
	"github.com/DakshSitapara/wishlist/pkg/validator"
)

// ItemHandler handles HTTP requests for wishlist item endpoints.
type ItemHandler struct {
	wishlist *service.WishlistService
	filters  *service.FilterService
	logger   *slog.Logger
}

// NewItemHandler creates a new wishlist item HTTP handler.
func NewItemHandler(wishlist *service.WishlistService, filters *service.FilterService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{wishlist: wishlist, filters: filters, logger: logger}
}

// ItemRequest is the JSON request body for creating or updating an item.
// Field validation happens in the service so rejected input never reaches
// the collection.
type ItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Link        string  `json:"link"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Category    string  `json:"category"`
	Priority    string  `json:"priority"`
}

// List handles GET /api/v1/wishlist/items
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameFromContext(r.Context())
	if !ok {
		writeNoSession(w)
		return
	}

	items, err := h.wishlist.Items(r.Context(), username)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: items})
}

// Visible handles GET /api/v1/wishlist/items/visible, returning the items
// matching the active filter criteria.
func (h *ItemHandler) Visible(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameFromContext(r.Context())
	if !ok {
		writeNoSession(w)
		return
	}

	criteria := h.filters.Current(r.Context())
	items, err := h.wishlist.Visible(r.Context(), username, criteria)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: items})
}

// Create handles POST /api/v1/wishlist/items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameFromContext(r.Context())
	if !ok {
		writeNoSession(w)
		return
	}

	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w, err)
		return
	}

	item, err := h.wishlist.Add(r.Context(), username, domain.ItemDraft{
		Name:        req.Name,
		Description: req.Description,
		Link:        req.Link,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Priority:    domain.Priority(req.Priority),
	})
	if err != nil {
		writeItemError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: item})
}

// Update handles PUT /api/v1/wishlist/items/{itemId}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameFromContext(r.Context())
	if !ok {
		writeNoSession(w)
		return
	}

	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w, err)
		return
	}

	item, err := h.wishlist.Update(r.Context(), username, domain.WishlistItem{
		ID:          chi.URLParam(r, "itemId"),
		Name:        req.Name,
		Description: req.Description,
		Link:        req.Link,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Priority:    domain.Priority(req.Priority),
	})
	if err != nil {
		writeItemError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: item})
}

// Delete handles DELETE /api/v1/wishlist/items/{itemId}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameFromContext(r.Context())
	if !ok {
		writeNoSession(w)
		return
	}

	if err := h.wishlist.Delete(r.Context(), username, chi.URLParam(r, "itemId")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

// TogglePurchased handles PATCH /api/v1/wishlist/items/{itemId}/purchased
func (h *ItemHandler) TogglePurchased(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameFromContext(r.Context())
	if !ok {
		writeNoSession(w)
		return
	}

	item, err := h.wishlist.TogglePurchased(r.Context(), username, chi.URLParam(r, "itemId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: item})
}

// Categories handles GET /api/v1/wishlist/categories
func (h *ItemHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.wishlist.Categories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: categories})
}

// writeItemError routes validation failures to the field-level response and
// everything else to the standard error writer.
func writeItemError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if isValidationError(err) {
		httputil.WriteValidationError(w, err)
		return
	}
	httputil.WriteError(w, r, err, logger)
}

func isValidationError(err error) bool {
	var valErr *validator.ValidationError
	return errors.As(err, &valErr)
}

func writeNoSession(w http.ResponseWriter) {
	httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
		Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"},
	})
}

func writeBadBody(w http.ResponseWriter, err error) {
	httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
		Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
	})
}
