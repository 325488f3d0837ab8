package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sponsorscope/sponsorscope/internal/store"
)

func NewRouter(s store.Store, sim SimulationService, refresher ChannelRefresher, adminToken string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	simulate := NewSimulateHandler(sim)
	channels := NewChannelsHandler(s, refresher)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/simulate", simulate.Simulate)
		r.Post("/compare-weights", simulate.CompareWeights)
		r.Post("/brand-compatibility", simulate.BrandCompatibility)
		r.Get("/sentiment/{channelID}", simulate.Sentiment)
		r.Post("/comments/summary", simulate.CommentsSummary)

		r.Get("/channels", channels.List)
		r.Get("/channels/{id}", channels.Get)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Get("/stats", channels.Stats)
			r.Post("/channels/{id}/refresh", channels.Refresh)
			r.Delete("/channels/{id}", channels.Delete)
			r.Get("/export/channels.csv", channels.ExportCSV)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
