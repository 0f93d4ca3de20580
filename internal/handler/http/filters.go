package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/DakshSitapara/wishlist/internal/domain"
	"github.com/DakshSitapara/wishlist/internal/service"
	"github.com/DakshSitapara/wishlist/pkg/httputil"
	"github.com/DakshSitapara/wishlist/pkg/validator"
)

// FilterHandler handles HTTP requests for the filter criteria endpoints.
type FilterHandler struct {
	service *service.FilterService
	logger  *slog.Logger
}

// NewFilterHandler creates a new filter HTTP handler.
func NewFilterHandler(svc *service.FilterService, logger *slog.Logger) *FilterHandler {
	return &FilterHandler{service: svc, logger: logger}
}

// FilterRequest is the JSON request body for replacing the filter criteria.
// Omitted facets reset to unfiltered.
type FilterRequest struct {
	SearchText string   `json:"searchText"`
	Categories []string `json:"categories"`
	Statuses   []string `json:"statuses" validate:"dive,oneof=purchased not-purchased"`
	PriceMin   *float64 `json:"priceMin" validate:"omitempty,gte=0"`
	PriceMax   *float64 `json:"priceMax" validate:"omitempty,gte=0"`
	Priorities []string `json:"priorities" validate:"dive,oneof=High Medium Low"`
}

// Get handles GET /api/v1/filters
func (h *FilterHandler) Get(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.Current(r.Context())})
}

// Update handles PUT /api/v1/filters
func (h *FilterHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w, err)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	statuses := make([]domain.Status, len(req.Statuses))
	for i, s := range req.Statuses {
		statuses[i] = domain.Status(s)
	}
	priorities := make([]domain.Priority, len(req.Priorities))
	for i, p := range req.Priorities {
		priorities[i] = domain.Priority(p)
	}

	applied := h.service.Update(r.Context(), domain.Criteria{
		SearchText: req.SearchText,
		Categories: req.Categories,
		Statuses:   statuses,
		PriceMin:   req.PriceMin,
		PriceMax:   req.PriceMax,
		Priorities: priorities,
	})

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: applied})
}

// Reset handles DELETE /api/v1/filters
func (h *FilterHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.service.Reset(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: domain.Criteria{}})
}
