package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/extractor"
	"github.com/saturnino-fabrica-de-software/ponto/internal/gallery"
	"github.com/saturnino-fabrica-de-software/ponto/internal/matcher"
	"github.com/saturnino-fabrica-de-software/ponto/internal/repository"
)

// EventRecorder applies recognized identities to the attendance ledger.
type EventRecorder interface {
	RecordEvents(ctx context.Context, events []domain.AttendanceEvent, now time.Time) ([]domain.AttendanceRecord, error)
}

// ReportReader re-parses daily artifacts for the read path.
type ReportReader interface {
	Read(date time.Time) ([]domain.ReportRow, error)
}

// SnapshotProvider yields the current gallery snapshot for matching.
type SnapshotProvider interface {
	Snapshot() *gallery.Snapshot
}

// AttendanceService turns a camera frame into attendance mutations: extract
// every face, match against the gallery, hand the recognized identities to
// the ledger.
type AttendanceService struct {
	extractor extractor.Extractor
	gallery   SnapshotProvider
	ledger    EventRecorder
	reports   ReportReader
	sessions  repository.AttendanceRepositoryInterface
	threshold float64
	now       func() time.Time
	logger    *slog.Logger
}

func NewAttendanceService(
	ext extractor.Extractor,
	g SnapshotProvider,
	ledger EventRecorder,
	reports ReportReader,
	sessions repository.AttendanceRepositoryInterface,
	threshold float64,
	logger *slog.Logger,
) *AttendanceService {
	return &AttendanceService{
		extractor: ext,
		gallery:   g,
		ledger:    ledger,
		reports:   reports,
		sessions:  sessions,
		threshold: threshold,
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock overrides the wall clock, for tests.
func (s *AttendanceService) WithClock(now func() time.Time) *AttendanceService {
	s.now = now
	return s
}

// Mark processes one frame. Unrecognized faces are not an error; a frame
// with zero detected faces is.
func (s *AttendanceService) Mark(ctx context.Context, image []byte) (*domain.MarkResult, error) {
	if len(image) == 0 {
		return nil, domain.ErrValidationFailed.WithError(fmt.Errorf("image is required"))
	}

	embeddings, err := s.extractor.Represent(ctx, image)
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, domain.ErrNoFaceDetected
	}

	snap := s.gallery.Snapshot()
	matches := matcher.Match(embeddings, snap, s.threshold)

	events := make([]domain.AttendanceEvent, 0, len(matches))
	for _, m := range matches {
		events = append(events, domain.AttendanceEvent{
			EmployeeID: m.EmployeeID,
			Name:       m.Name,
		})
	}

	records, err := s.ledger.RecordEvents(ctx, events, s.now())
	if err != nil {
		return nil, fmt.Errorf("record attendance: %w", err)
	}

	s.logger.Info("frame processed",
		slog.Int("faces", len(embeddings)),
		slog.Int("recognized", len(matches)),
		slog.Int("records", len(records)),
		slog.Uint64("gallery_version", snap.Version()),
	)

	return &domain.MarkResult{
		Recognized: matches,
		TotalFaces: len(embeddings),
		Records:    records,
	}, nil
}

// Today returns today's rows as written to the daily artifact. The artifact
// is regenerated after every mutation, so this reflects the last export.
func (s *AttendanceService) Today() ([]domain.ReportRow, error) {
	now := s.now()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.reports.Read(date)
}

// History queries sessions straight from the ledger, optionally bounded by
// start and end dates (inclusive).
func (s *AttendanceService) History(ctx context.Context, start, end *time.Time) ([]domain.Session, error) {
	if start != nil && end != nil && end.Before(*start) {
		return nil, domain.ErrValidationFailed.WithError(fmt.Errorf("end date before start date"))
	}
	return s.sessions.ListRange(ctx, start, end)
}
