package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

type AttendanceRepository struct {
	pool PgxPool
}

func NewAttendanceRepository(pool PgxPool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// LatestForDay returns the most recently created session for an employee on
// a date, or nil when the employee has none. Ordering is by creation, with id
// as a tiebreak, deliberately not by time_in: the punch decision must follow
// insertion order even under clock anomalies.
func (r *AttendanceRepository) LatestForDay(ctx context.Context, employeeID string, date time.Time) (*domain.Session, error) {
	query := `
		SELECT id, employee_id, name, date, time_in, time_out, status, created_at
		FROM attendance_sessions
		WHERE employee_id = $1 AND date = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var session domain.Session
	err := r.pool.QueryRow(ctx, query, employeeID, date).Scan(
		&session.ID,
		&session.EmployeeID,
		&session.Name,
		&session.Date,
		&session.TimeIn,
		&session.TimeOut,
		&session.Status,
		&session.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest session for day: %w", err)
	}

	return &session, nil
}

// CreateSession inserts a punch-in. A duplicate (employee_id, date, time_in)
// surfaces as domain.ErrAttendanceConflict so a concurrent double-processing
// of the same instant stays a recoverable per-employee failure.
func (r *AttendanceRepository) CreateSession(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO attendance_sessions (id, employee_id, name, date, time_in, time_out, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at
	`

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.Status == "" {
		session.Status = domain.StatusPresent
	}

	err := r.pool.QueryRow(ctx, query,
		session.ID,
		session.EmployeeID,
		session.Name,
		session.Date,
		session.TimeIn,
		session.TimeOut,
		session.Status,
	).Scan(&session.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAttendanceConflict
		}
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

// CloseSession records the punch-out on an open session. time_in is left
// untouched; closing an already closed or unknown session is an error.
func (r *AttendanceRepository) CloseSession(ctx context.Context, id uuid.UUID, timeOut time.Time) error {
	query := `
		UPDATE attendance_sessions
		SET time_out = $1
		WHERE id = $2 AND time_out IS NULL
	`

	result, err := r.pool.Exec(ctx, query, timeOut, id)
	if err != nil {
		return fmt.Errorf("close session: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrNotFound.WithError(fmt.Errorf("open session %s not found", id))
	}

	return nil
}

// ListByDate returns every session for a date ordered for the daily report:
// by employee then ascending punch-in time.
func (r *AttendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]domain.Session, error) {
	query := `
		SELECT id, employee_id, name, date, time_in, time_out, status, created_at
		FROM attendance_sessions
		WHERE date = $1
		ORDER BY employee_id, time_in
	`

	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("list sessions by date: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// ListRange returns sessions within an optional [start, end] date range,
// newest dates first. Nil bounds are open.
func (r *AttendanceRepository) ListRange(ctx context.Context, start, end *time.Time) ([]domain.Session, error) {
	query := `
		SELECT id, employee_id, name, date, time_in, time_out, status, created_at
		FROM attendance_sessions
		WHERE ($1::date IS NULL OR date >= $1)
		  AND ($2::date IS NULL OR date <= $2)
		ORDER BY date DESC, employee_id, time_in
	`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list sessions by range: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

func scanSessions(rows pgx.Rows) ([]domain.Session, error) {
	var sessions []domain.Session
	for rows.Next() {
		var session domain.Session
		if err := rows.Scan(
			&session.ID,
			&session.EmployeeID,
			&session.Name,
			&session.Date,
			&session.TimeIn,
			&session.TimeOut,
			&session.Status,
			&session.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}
