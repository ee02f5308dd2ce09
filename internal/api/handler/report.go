package handler

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/report"
)

// ReportStore interface for the report exporter's read side
type ReportStore interface {
	List() ([]report.ArtifactInfo, error)
	ArtifactPath(name string) (string, error)
}

// ReportHandler serves the daily xlsx artifacts
type ReportHandler struct {
	store  ReportStore
	logger *slog.Logger
}

func NewReportHandler(store ReportStore, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		store:  store,
		logger: logger,
	}
}

// ListReportsResponse response for the report listing endpoint
type ListReportsResponse struct {
	Reports []report.ArtifactInfo `json:"reports"`
	Total   int                   `json:"total"`
}

// List GET /v1/reports - available artifacts, newest first
func (h *ReportHandler) List(c *fiber.Ctx) error {
	reports, err := h.store.List()
	if err != nil {
		return err
	}

	return c.JSON(ListReportsResponse{
		Reports: reports,
		Total:   len(reports),
	})
}

// Download GET /v1/reports/:filename - stream one artifact
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	filename := strings.TrimSpace(c.Params("filename"))
	if filename == "" {
		return domain.ErrInvalidFilename
	}

	path, err := h.store.ArtifactPath(filename)
	if err != nil {
		return err
	}

	return c.Download(path, filename)
}
