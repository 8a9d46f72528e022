package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/attendance-service/internal/domain"
)

// EmployeeRepository defines persistence access for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	GetByNameOrEmail(ctx context.Context, identifier string) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	ListBySupervisor(ctx context.Context, supervisorID string) ([]domain.Employee, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository returns a Postgres-backed implementation.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (name, email, hourly_rate, active, supervisor_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		employee.Name,
		employee.Email,
		employee.HourlyRate,
		employee.Active,
		employee.SupervisorID,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	const query = `
        UPDATE employees SET name=$1, email=$2, hourly_rate=$3, active=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		employee.Name,
		employee.Email,
		employee.HourlyRate,
		employee.Active,
		employee.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	const query = `
        SELECT id, name, email, hourly_rate, active, supervisor_id, created_at, updated_at
        FROM employees WHERE id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *employeeRepository) GetByNameOrEmail(ctx context.Context, identifier string) (*domain.Employee, error) {
	const query = `
        SELECT id, name, email, hourly_rate, active, supervisor_id, created_at, updated_at
        FROM employees WHERE name=$1 OR email=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, identifier))
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	const query = `
        SELECT id, name, email, hourly_rate, active, supervisor_id, created_at, updated_at
        FROM employees WHERE email=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *employeeRepository) ListBySupervisor(ctx context.Context, supervisorID string) ([]domain.Employee, error) {
	const query = `
        SELECT id, name, email, hourly_rate, active, supervisor_id, created_at, updated_at
        FROM employees WHERE supervisor_id=$1
        ORDER BY name`

	rows, err := r.pool.Query(ctx, query, supervisorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var employee domain.Employee
		if err := rows.Scan(
			&employee.ID,
			&employee.Name,
			&employee.Email,
			&employee.HourlyRate,
			&employee.Active,
			&employee.SupervisorID,
			&employee.CreatedAt,
			&employee.UpdatedAt,
		); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func (r *employeeRepository) scanOne(row pgx.Row) (*domain.Employee, error) {
	var employee domain.Employee
	if err := row.Scan(
		&employee.ID,
		&employee.Name,
		&employee.Email,
		&employee.HourlyRate,
		&employee.Active,
		&employee.SupervisorID,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &employee, nil
}
