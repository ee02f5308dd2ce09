package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/repository"
)

// ReportExporter regenerates the daily artifact after ledger mutations.
type ReportExporter interface {
	Export(ctx context.Context, date time.Time) error
}

// Ledger applies recognition events to attendance sessions. Each employee's
// day follows a fixed cycle: no session means punch-in, an open session
// means punch-out, a closed session means a fresh punch-in. The deciding
// session is the most recently created one, not the one with the latest
// time_in.
type Ledger struct {
	sessions repository.AttendanceRepositoryInterface
	exporter ReportExporter
	logger   *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(sessions repository.AttendanceRepositoryInterface, exporter ReportExporter, logger *slog.Logger) *Ledger {
	return &Ledger{
		sessions: sessions,
		exporter: exporter,
		logger:   logger,
		locks:    make(map[string]*sync.Mutex),
	}
}

// RecordEvents applies a deduplicated batch of events at a single instant.
// One employee's storage failure is logged and skipped, the rest of the
// batch proceeds. When at least one record was produced the daily report
// is regenerated; an export failure never undoes the ledger writes.
func (l *Ledger) RecordEvents(ctx context.Context, events []domain.AttendanceEvent, now time.Time) ([]domain.AttendanceRecord, error) {
	now = now.Truncate(time.Second)
	date := dateOf(now)

	records := make([]domain.AttendanceRecord, 0, len(events))
	for _, event := range events {
		record, err := l.recordOne(ctx, event, date, now)
		if err != nil {
			if errors.Is(err, domain.ErrAttendanceConflict) {
				l.logger.Warn("attendance conflict, skipping employee",
					slog.String("employee_id", event.EmployeeID),
				)
			} else {
				l.logger.Error("attendance update failed",
					slog.String("employee_id", event.EmployeeID),
					slog.Any("error", err),
				)
			}
			continue
		}
		records = append(records, record)
	}

	if len(records) > 0 {
		if err := l.exporter.Export(ctx, date); err != nil {
			l.logger.Error("report export failed after ledger update",
				slog.String("date", date.Format("2006-01-02")),
				slog.Any("error", err),
			)
		}
	}

	return records, nil
}

func (l *Ledger) recordOne(ctx context.Context, event domain.AttendanceEvent, date, now time.Time) (domain.AttendanceRecord, error) {
	unlock := l.lock(event.EmployeeID)
	defer unlock()

	latest, err := l.sessions.LatestForDay(ctx, event.EmployeeID, date)
	if err != nil {
		return domain.AttendanceRecord{}, fmt.Errorf("load latest session: %w", err)
	}

	if latest != nil && latest.Open() {
		// Punch-out closes the open session and keeps its original time_in.
		if err := l.sessions.CloseSession(ctx, latest.ID, now); err != nil {
			return domain.AttendanceRecord{}, fmt.Errorf("close session: %w", err)
		}

		timeOut := now.Format(domain.ClockFormat)
		l.logger.Info("punch-out recorded",
			slog.String("employee_id", event.EmployeeID),
			slog.String("time_out", timeOut),
		)

		return domain.AttendanceRecord{
			EmployeeID: latest.EmployeeID,
			Name:       latest.Name,
			Date:       date.Format("2006-01-02"),
			TimeIn:     latest.TimeIn.Format(domain.ClockFormat),
			TimeOut:    &timeOut,
			Status:     latest.Status,
		}, nil
	}

	// Either no session today or the latest one is already closed.
	session := &domain.Session{
		EmployeeID: event.EmployeeID,
		Name:       event.Name,
		Date:       date,
		TimeIn:     now,
	}
	if err := l.sessions.CreateSession(ctx, session); err != nil {
		return domain.AttendanceRecord{}, err
	}

	l.logger.Info("punch-in recorded",
		slog.String("employee_id", event.EmployeeID),
		slog.String("time_in", now.Format(domain.ClockFormat)),
	)

	return domain.AttendanceRecord{
		EmployeeID: session.EmployeeID,
		Name:       session.Name,
		Date:       date.Format("2006-01-02"),
		TimeIn:     session.TimeIn.Format(domain.ClockFormat),
		TimeOut:    nil,
		Status:     session.Status,
	}, nil
}

// lock serializes mutations per employee so two frames recognizing the
// same person cannot interleave their read-then-write cycles.
func (l *Ledger) lock(employeeID string) func() {
	l.mu.Lock()
	m, ok := l.locks[employeeID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[employeeID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
