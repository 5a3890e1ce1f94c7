package http

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"cleancli/internal/cleaning"
	apierrors "cleancli/internal/errors"
	"cleancli/internal/exporter"
	"cleancli/internal/infrastructure"
	"cleancli/internal/ingest"
	"cleancli/pkg/contracts/domain"
)

var validate = validator.New()

// CleanRequest carries the per-run options of an upload. The file itself
// travels as the multipart "file" part.
type CleanRequest struct {
	Strategy         string  `json:"strategy" validate:"required,oneof=delete zero mean mode"`
	OutlierThreshold float64 `json:"outlier_threshold" validate:"omitempty,gt=0"`
}

// CleanResponse is the success payload of a cleaning run.
type CleanResponse struct {
	Success     bool                   `json:"success"`
	Report      *domain.CleaningReport `json:"report"`
	CleanedFile string                 `json:"cleaned_file"`
	DownloadURL string                 `json:"download_url"`
}

// Render implements render.Renderer
func (c *CleanResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusOK)
	return nil
}

// CleanHandler handles upload-and-clean HTTP requests
type CleanHandler struct {
	pipeline       *cleaning.Pipeline
	writer         *exporter.CSVWriter
	metrics        *infrastructure.CleaningMetrics
	logger         *slog.Logger
	maxUploadBytes int64
}

// NewCleanHandler creates a new clean handler
func NewCleanHandler(pipeline *cleaning.Pipeline, writer *exporter.CSVWriter, metrics *infrastructure.CleaningMetrics, logger *slog.Logger, maxUploadBytes int64) *CleanHandler {
	return &CleanHandler{
		pipeline:       pipeline,
		writer:         writer,
		metrics:        metrics,
		logger:         logger.With(slog.String("component", "clean_handler")),
		maxUploadBytes: maxUploadBytes,
	}
}

// Clean handles POST /api/v1/clean: multipart upload with "file",
// "strategy" and optional "outlier_threshold" fields.
func (h *CleanHandler) Clean(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.metrics.RecordFailure(ctx, "upload_too_large")
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrPayloadTooLarge))
		return
	}

	req := CleanRequest{Strategy: r.FormValue("strategy")}
	if raw := r.FormValue("outlier_threshold"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			render.Render(w, r, apierrors.NewErrorResponse(
				apierrors.ErrValidation("outlier_threshold", "must be a number")))
			return
		}
		req.OutlierThreshold = threshold
	}
	if err := validate.Struct(req); err != nil {
		h.metrics.RecordFailure(ctx, "invalid_configuration")
		render.Render(w, r, apierrors.NewErrorResponse(
			apierrors.ErrValidation("strategy", "must be one of delete, zero, mean, mode")))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(
			apierrors.ErrValidation("file", "multipart file field is required")))
		return
	}
	defer file.Close()

	table, err := h.loadTable(file, header.Filename)
	if err != nil {
		h.metrics.RecordFailure(ctx, "unreadable_input")
		render.Render(w, r, apierrors.NewErrorResponse(h.ingestError(err)))
		return
	}

	cfg := cleaning.Config{
		Strategy:         domain.Strategy(req.Strategy),
		OutlierThreshold: req.OutlierThreshold,
	}
	report, err := h.pipeline.Run(ctx, table, cfg)
	if err != nil {
		if apierrors.IsConfigurationError(err) {
			h.metrics.RecordFailure(ctx, "invalid_configuration")
			render.Render(w, r, apierrors.NewErrorResponse(apierrors.InvalidRequestWithError(err)))
			return
		}
		h.metrics.RecordFailure(ctx, "run_failed")
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.CleaningError(err)))
		return
	}

	cleanedName := cleanedFilename(header.Filename, report.RunID)
	path, err := h.writer.WriteTable(cleanedName, table)
	if err != nil {
		h.metrics.RecordFailure(ctx, "write_failed")
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.FileSystemError("export", err)))
		return
	}
	h.metrics.RecordRun(ctx, report)

	h.logger.InfoContext(ctx, "cleaning run served",
		slog.String("run_id", report.RunID),
		slog.String("input_file", header.Filename),
		slog.String("cleaned_file", path),
		slog.Int("rows_before", report.RowsBefore),
		slog.Int("rows_after", report.RowsAfter))

	render.Render(w, r, &CleanResponse{
		Success:     true,
		Report:      report,
		CleanedFile: cleanedName,
		DownloadURL: "/api/v1/download/" + cleanedName,
	})
}

// loadTable materializes the uploaded file. Excel uploads are spooled to
// a temp file because excelize needs random access.
func (h *CleanHandler) loadTable(file multipart.File, filename string) (*domain.Table, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return ingest.ReadCSV(file)
	case ".xls", ".xlsx":
		tmp, err := spoolUpload(file, ext)
		if err != nil {
			return nil, err
		}
		defer tmp.cleanup()
		return ingest.ReadExcel(tmp.path)
	default:
		return nil, apierrors.UnsupportedFileError(ext)
	}
}

// ingestError maps ingestion failures onto API errors.
func (h *CleanHandler) ingestError(err error) *apierrors.APIError {
	switch {
	case apierrors.Is(err, apierrors.ErrUnsupportedFile):
		return apierrors.ErrUnsupportedFormat
	case apierrors.Is(err, apierrors.ErrEmptyInput):
		return apierrors.NewValidationError("uploaded file contains no data")
	default:
		return apierrors.InvalidRequestWithError(err)
	}
}

// cleanedFilename derives the output name, keeping it filesystem safe.
func cleanedFilename(original, runID string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = cleaning.NormalizeName(base)
	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("cleaned_%s_%s.csv", base, short)
}

// spooledFile is a temp file holding an uploaded workbook.
type spooledFile struct {
	path    string
	cleanup func()
}

func spoolUpload(file multipart.File, ext string) (*spooledFile, error) {
	tmp, err := os.CreateTemp("", "upload_*"+ext)
	if err != nil {
		return nil, fmt.Errorf("failed to spool upload: %w", err)
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to spool upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to spool upload: %w", err)
	}
	return &spooledFile{
		path:    tmp.Name(),
		cleanup: func() { os.Remove(tmp.Name()) },
	}, nil
}
