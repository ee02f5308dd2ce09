package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

// AttendanceMarker interface for the attendance service
type AttendanceMarker interface {
	Mark(ctx context.Context, image []byte) (*domain.MarkResult, error)
	Today() ([]domain.ReportRow, error)
	History(ctx context.Context, start, end *time.Time) ([]domain.Session, error)
}

// AttendanceHandler handles attendance marking and queries
type AttendanceHandler struct {
	service AttendanceMarker
	logger  *slog.Logger
}

func NewAttendanceHandler(service AttendanceMarker, logger *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		logger:  logger,
	}
}

// TodayResponse response for the today endpoint
type TodayResponse struct {
	Date    string             `json:"date"`
	Records []domain.ReportRow `json:"records"`
	Total   int                `json:"total"`
}

// SessionResponse is one ledger session in the history listing
type SessionResponse struct {
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	Date       string  `json:"date"`
	TimeIn     string  `json:"time_in"`
	TimeOut    *string `json:"time_out"`
	Status     string  `json:"status"`
}

// HistoryResponse response for the range query endpoint
type HistoryResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Total    int               `json:"total"`
}

// Mark POST /v1/attendance - process one camera frame
func (h *AttendanceHandler) Mark(c *fiber.Ctx) error {
	imageBytes, err := extractAndValidateImage(c)
	if err != nil {
		return fmt.Errorf("mark attendance: %w", err)
	}

	result, err := h.service.Mark(c.Context(), imageBytes)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// Today GET /v1/attendance/today - today's rows from the report artifact
func (h *AttendanceHandler) Today(c *fiber.Ctx) error {
	rows, err := h.service.Today()
	if err != nil {
		return err
	}

	return c.JSON(TodayResponse{
		Date:    time.Now().Format("2006-01-02"),
		Records: rows,
		Total:   len(rows),
	})
}

// History GET /v1/attendance?start=YYYY-MM-DD&end=YYYY-MM-DD - sessions
// straight from the ledger
func (h *AttendanceHandler) History(c *fiber.Ctx) error {
	start, err := parseDateQuery(c, "start")
	if err != nil {
		return err
	}
	end, err := parseDateQuery(c, "end")
	if err != nil {
		return err
	}

	sessions, err := h.service.History(c.Context(), start, end)
	if err != nil {
		return err
	}

	out := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, toSessionResponse(session))
	}

	return c.JSON(HistoryResponse{
		Sessions: out,
		Total:    len(out),
	})
}

func toSessionResponse(session domain.Session) SessionResponse {
	resp := SessionResponse{
		EmployeeID: session.EmployeeID,
		Name:       session.Name,
		Date:       session.Date.Format("2006-01-02"),
		TimeIn:     session.TimeIn.Format(domain.ClockFormat),
		Status:     session.Status,
	}
	if session.TimeOut != nil {
		timeOut := session.TimeOut.Format(domain.ClockFormat)
		resp.TimeOut = &timeOut
	}
	return resp
}

func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}

	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, domain.ErrValidationFailed.WithError(
			errors.New(name + " must be a YYYY-MM-DD date"))
	}
	return &date, nil
}
