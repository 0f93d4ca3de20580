package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DakshSitapara/wishlist/internal/service"
	"github.com/DakshSitapara/wishlist/pkg/health"
	"github.com/DakshSitapara/wishlist/pkg/middleware"
)

// NewRouter creates a chi router with all application routes registered.
func NewRouter(
	authService *service.AuthService,
	wishlistService *service.WishlistService,
	filterService *service.FilterService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("wishlist"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	authHandler := NewAuthHandler(authService, logger)
	itemHandler := NewItemHandler(wishlistService, filterService, logger)
	filterHandler := NewFilterHandler(filterService, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/session", authHandler.Session)
		})

		// Everything below requires an active session.
		r.Group(func(r chi.Router) {
			r.Use(RequireUser(authService))

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/items", itemHandler.List)
				r.Get("/items/visible", itemHandler.Visible)
				r.Post("/items", itemHandler.Create)
				r.Put("/items/{itemId}", itemHandler.Update)
				r.Delete("/items/{itemId}", itemHandler.Delete)
				r.Patch("/items/{itemId}/purchased", itemHandler.TogglePurchased)
				r.Get("/categories", itemHandler.Categories)
			})

			r.Route("/filters", func(r chi.Router) {
				r.Get("/", filterHandler.Get)
				r.Put("/", filterHandler.Update)
				r.Delete("/", filterHandler.Reset)
			})
		})
	})

	return r
}
