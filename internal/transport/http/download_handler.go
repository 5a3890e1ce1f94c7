package http

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"cleancli/internal/config"
	apierrors "cleancli/internal/errors"
)

// DownloadHandler serves cleaned output files
type DownloadHandler struct {
	paths  *config.PathsConfig
	logger *slog.Logger
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(paths *config.PathsConfig, logger *slog.Logger) *DownloadHandler {
	return &DownloadHandler{
		paths:  paths,
		logger: logger.With(slog.String("component", "download_handler")),
	}
}

// Download handles GET /api/v1/download/{filename}. Only bare filenames
// inside the cleaned directory are served.
func (h *DownloadHandler) Download(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" || filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		render.Render(w, r, apierrors.NewErrorResponse(
			apierrors.ErrValidation("filename", "invalid file name")))
		return
	}

	path := h.paths.GetCleanedPath(filename)
	if _, err := os.Stat(path); err != nil {
		h.logger.WarnContext(r.Context(), "requested file not found",
			slog.String("filename", filename))
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrFileNotFound))
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	http.ServeFile(w, r, path)
}
