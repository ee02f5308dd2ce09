package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

type EmployeeRepository struct {
	pool PgxPool
}

func NewEmployeeRepository(pool PgxPool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	query := `
		INSERT INTO employees (employee_id, name, department, position, embedding, image_path, vector_path, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING registered_at
	`

	err := r.pool.QueryRow(ctx, query,
		employee.EmployeeID,
		employee.Name,
		employee.Department,
		employee.Position,
		toVector(employee.Embedding),
		employee.ImagePath,
		employee.VectorPath,
	).Scan(&employee.RegisteredAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmployeeExists
		}
		return fmt.Errorf("create employee: %w", err)
	}

	return nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `
		SELECT employee_id, name, department, position, embedding, image_path, vector_path, registered_at
		FROM employees
		WHERE employee_id = $1
	`

	var employee domain.Employee
	var embedding *pgvector.Vector

	err := r.pool.QueryRow(ctx, query, employeeID).Scan(
		&employee.EmployeeID,
		&employee.Name,
		&employee.Department,
		&employee.Position,
		&embedding,
		&employee.ImagePath,
		&employee.VectorPath,
		&employee.RegisteredAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get employee by id: %w", err)
	}

	employee.Embedding = fromVector(embedding)

	return &employee, nil
}

func (r *EmployeeRepository) Exists(ctx context.Context, employeeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM employees WHERE employee_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, employeeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check employee exists: %w", err)
	}

	return exists, nil
}

func (r *EmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	query := `
		SELECT employee_id, name, department, position, embedding, image_path, vector_path, registered_at
		FROM employees
		ORDER BY registered_at, employee_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var employee domain.Employee
		var embedding *pgvector.Vector

		if err := rows.Scan(
			&employee.EmployeeID,
			&employee.Name,
			&employee.Department,
			&employee.Position,
			&embedding,
			&employee.ImagePath,
			&employee.VectorPath,
			&employee.RegisteredAt,
		); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}

		employee.Embedding = fromVector(embedding)
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	return employees, nil
}

// toVector converts a domain embedding to the pgvector wire type. Empty
// embeddings map to NULL.
func toVector(embedding domain.Embedding) *pgvector.Vector {
	if len(embedding) == 0 {
		return nil
	}

	floats := make([]float32, len(embedding))
	for i, v := range embedding {
		floats[i] = float32(v)
	}
	vec := pgvector.NewVector(floats)
	return &vec
}

// fromVector converts a scanned pgvector value back to a domain embedding.
func fromVector(vec *pgvector.Vector) domain.Embedding {
	if vec == nil || vec.Slice() == nil {
		return nil
	}

	embedding := make(domain.Embedding, len(vec.Slice()))
	for i, v := range vec.Slice() {
		embedding[i] = float64(v)
	}
	return embedding
}
