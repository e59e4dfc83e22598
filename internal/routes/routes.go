package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/AnshRaj112/userorders-backend/internal/config"
	"github.com/AnshRaj112/userorders-backend/internal/handlers"
	"github.com/AnshRaj112/userorders-backend/internal/middleware"
)

// NewRouter builds the HTTP surface: the middleware chain, the health
// endpoints and the /api/users tree.
func NewRouter(cfg *config.Config, logger *slog.Logger, users *handlers.UserHandler, health *handlers.HealthHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(logger, cfg.TrustProxy))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.IsProduction() {
		r.Use(middleware.SecurityHeaders)
	}

	r.Get("/", handlers.Root)
	r.Get("/health", health.Health)

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", users.CreateUser)
		r.Get("/", users.ListUsers)

		r.Route("/{userId}", func(r chi.Router) {
			r.Get("/", users.GetUser)
			r.Put("/", users.UpdateUser)
			r.Delete("/", users.DeleteUser)

			r.Get("/orders", users.ListOrders)
			r.Post("/orders", users.AddOrder)
			r.Get("/orders/total-price", users.SumOrderTotal)
		})
	})

	return r
}
