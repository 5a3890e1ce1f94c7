package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"cleancli/internal/cleaning"
	"cleancli/internal/config"
	"cleancli/internal/exporter"
	"cleancli/internal/infrastructure"
	mw "cleancli/internal/middleware"
)

// RouterDeps bundles what the router needs wired in.
type RouterDeps struct {
	Config    *config.Config
	Logger    *slog.Logger
	Pipeline  *cleaning.Pipeline
	Writer    *exporter.CSVWriter
	Metrics   *infrastructure.CleaningMetrics
	Providers *infrastructure.OTelProviders
}

// NewRouter assembles the HTTP API: cleaning, downloads, health and
// Prometheus metrics behind the standard middleware chain.
func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.StructuredLogger(deps.Logger))
	r.Use(mw.Recoverer(deps.Logger))
	if deps.Config.Server.RateLimitRPS > 0 {
		limiter := mw.NewRateLimiter(deps.Config.Server.RateLimitRPS, deps.Config.Server.RateLimitBurst, deps.Logger)
		r.Use(limiter.Handler)
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	health := NewHealthHandler()
	clean := NewCleanHandler(deps.Pipeline, deps.Writer, deps.Metrics, deps.Logger, deps.Config.Server.MaxUploadBytes)
	download := NewDownloadHandler(&deps.Config.Paths, deps.Logger)

	r.Get("/api/health", health.HealthCheck)
	r.Get("/api/version", health.Version)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/clean", clean.Clean)
		r.Get("/download/{filename}", download.Download)
	})

	if deps.Providers != nil && deps.Providers.PrometheusHTTP != nil {
		r.Handle("/metrics", deps.Providers.PrometheusHTTP)
	}

	return r
}

// NewServer wraps the router in a configured http.Server.
func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}
