/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend clients
  5. API key:    X-Org-ID / X-API-Key validation on /api/v1

ROUTE GROUPS:
  /api/v1/calculate/*                Shift, bulk, roster, shift-roster costing
  /api/v1/rates/{award}/{type}       Effective rate table
  /api/v1/classifications/{award}    Per-award classifications
  /api/v1/awards                     Award registry (public)
  /api/v1/reference-data/*           Seeded-data listings (public)
  /api/v1/admin/keys                 API-key management (bearer admin token)
  /health                            Liveness
  /metrics                           Prometheus scrape

SEE ALSO:
  - handlers.go: Handler implementations
  - auth.go: API-key and admin-token middleware
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string, adminToken string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Org-ID", "X-API-Key"},
		AllowCredentials: true,
	}))

	r.Get("/health", h.Health)
	r.Method("GET", "/metrics", MetricsHandler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.RequireAPIKey)

			r.Route("/calculate", func(r chi.Router) {
				r.Post("/shift", h.CalculateShift)
				r.Post("/bulk", h.CalculateBulk)
				r.Post("/roster", h.CalculateRoster)
				r.Post("/shift-roster", h.CalculateShiftRoster)
			})
			r.Get("/rates/{award_code}/{employment_type}", h.GetRates)
			r.Get("/classifications/{award_code}", h.ListClassifications)
		})

		// Reference data is public: award pickers and sync jobs read it
		// before they have a key.
		r.Get("/awards", h.ListAwards)
		r.Route("/reference-data", func(r chi.Router) {
			r.Get("/summary", h.ReferenceSummary)
			r.Get("/wage-allowances", h.ListWageAllowances)
			r.Get("/expense-allowances", h.ListExpenseAllowances)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAdmin(adminToken))
			r.Post("/keys", h.CreateAPIKey)
			r.Get("/keys", h.ListAPIKeys)
			r.Delete("/keys/{id}", h.RevokeAPIKey)
		})
	})

	return r
}
