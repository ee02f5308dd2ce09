package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

// PgxPool is the subset of pgxpool.Pool the repositories use. pgxmock's
// PgxPoolIface satisfies it too, which is what the unit tests rely on.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// EmployeeRepositoryInterface defines operations for employee data access
type EmployeeRepositoryInterface interface {
	Create(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, employeeID string) (*domain.Employee, error)
	Exists(ctx context.Context, employeeID string) (bool, error)
	List(ctx context.Context) ([]domain.Employee, error)
}

// AttendanceRepositoryInterface defines operations for attendance session
// data access
type AttendanceRepositoryInterface interface {
	LatestForDay(ctx context.Context, employeeID string, date time.Time) (*domain.Session, error)
	CreateSession(ctx context.Context, session *domain.Session) error
	CloseSession(ctx context.Context, id uuid.UUID, timeOut time.Time) error
	ListByDate(ctx context.Context, date time.Time) ([]domain.Session, error)
	ListRange(ctx context.Context, start, end *time.Time) ([]domain.Session, error)
}
