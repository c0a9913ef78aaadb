package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"recon-insights/internal/domain"
	"recon-insights/internal/usecase"
)

// NewRouter creates the Chi router with all API routes mounted. defaults
// fills in whatever a request leaves out of its query string.
func NewRouter(uc *usecase.DashboardUseCase, defaults domain.DashboardRequest) http.Handler {
	h := &Handlers{
		uc:       uc,
		defaults: defaults,
		now:      time.Now,
	}
	return h.routes()
}

func (h *Handlers) routes() http.Handler {
	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		// Dashboard.
		r.Get("/dashboard", h.GetDashboard)
		r.Get("/dashboard/export", h.ExportDashboard)

		// Views over a posted payload.
		r.Post("/views", h.BuildViews)
	})

	return r
}
