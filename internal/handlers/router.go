package handlers

import (
	"net/http"
	"time"

	"hackhub/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/cors"
)

type RouterOptions struct {
	CORSOrigins []string

	RateLimitEnabled bool
	SubmitLimit      int
	RateWindow       time.Duration
}

// NewRouter собирает маршруты API
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler)

	// у каждого маршрута свой счетчик по IP
	limit := func(r chi.Router) chi.Router {
		if !opts.RateLimitEnabled || opts.SubmitLimit <= 0 {
			return r
		}
		return r.With(httprate.LimitByIP(opts.SubmitLimit, opts.RateWindow))
	}

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)
		r.Get("/ready", h.ReadyHandler)

		limit(r).Post("/auth/login", h.LoginHandler)

		r.Route("/hackathons", func(r chi.Router) {
			limit(r).Post("/submit", h.SubmitHackathonHandler)
			r.Get("/", h.GetHackathonsHandler)
			r.Get("/facets", h.GetFacetsHandler)
			r.Get("/districts", h.GetDistrictsHandler)

			r.Group(func(r chi.Router) {
				r.Use(h.RequireAdmin)
				r.Get("/pending", h.GetPendingHackathonsHandler)
				r.Put("/{id}/approve", h.ApproveHackathonHandler)
				r.Put("/{id}/reject", h.RejectHackathonHandler)
			})

			r.Get("/{id}", h.GetHackathonHandler)
		})
	})

	return r
}
