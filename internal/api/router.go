package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Placement/internal/runner"
	"github.com/MikeSquared-Agency/Placement/internal/store"
)

type RouterConfig struct {
	AdminToken           string
	RateLimit            int
	DefaultSpreadsheetID string
}

// NewRouter builds the public API. sheets may be nil when no spreadsheet
// credentials are configured.
func NewRouter(rn *runner.Runner, s store.Store, sheets SheetsService, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	if cfg.RateLimit > 0 {
		r.Use(RateLimitMiddleware(cfg.RateLimit))
	}

	runs := NewRunsHandler(rn, s, logger)
	sheet := NewSheetsHandler(rn, sheets, cfg.DefaultSpreadsheetID, logger)
	ingestion := NewIngestHandler(logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/default-data", DefaultData)

		r.Post("/runs", runs.Create)
		r.Get("/runs/{id}", runs.Get)
		r.Get("/runs/{id}/export.csv", runs.Export)
		r.Post("/runs/sheets", sheet.Run)
		r.Get("/sheets/validate", sheet.Validate)

		r.Post("/ingest/csv", ingestion.CSV)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminToken))
			r.Get("/runs", runs.List)
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
