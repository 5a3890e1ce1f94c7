package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"cleancli/internal/infrastructure"
)

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	startTime time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startTime: time.Now()}
}

// HealthCheck handles GET /api/health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":  "healthy",
		"service": infrastructure.ServiceName,
		"uptime":  time.Since(h.startTime).String(),
	})
}

// Version handles GET /api/version
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"service": infrastructure.ServiceName,
		"version": infrastructure.ServiceVersion,
	})
}
