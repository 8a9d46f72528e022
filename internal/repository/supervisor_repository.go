package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/attendance-service/internal/domain"
)

// SupervisorRepository defines persistence access for supervisors.
type SupervisorRepository interface {
	Create(ctx context.Context, supervisor *domain.Supervisor) error
	GetByID(ctx context.Context, id string) (*domain.Supervisor, error)
	GetByNameOrEmail(ctx context.Context, identifier string) (*domain.Supervisor, error)
	GetByEmail(ctx context.Context, email string) (*domain.Supervisor, error)
}

type supervisorRepository struct {
	pool *pgxpool.Pool
}

// NewSupervisorRepository returns a Postgres-backed implementation.
func NewSupervisorRepository(pool *pgxpool.Pool) SupervisorRepository {
	return &supervisorRepository{pool: pool}
}

func (r *supervisorRepository) Create(ctx context.Context, supervisor *domain.Supervisor) error {
	const query = `
        INSERT INTO supervisors (name, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		supervisor.Name,
		supervisor.Email,
		supervisor.PasswordHash,
	).Scan(&supervisor.ID, &supervisor.CreatedAt, &supervisor.UpdatedAt)
}

func (r *supervisorRepository) GetByID(ctx context.Context, id string) (*domain.Supervisor, error) {
	const query = `
        SELECT id, name, email, password_hash, created_at, updated_at
        FROM supervisors WHERE id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *supervisorRepository) GetByNameOrEmail(ctx context.Context, identifier string) (*domain.Supervisor, error) {
	const query = `
        SELECT id, name, email, password_hash, created_at, updated_at
        FROM supervisors WHERE name=$1 OR email=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, identifier))
}

func (r *supervisorRepository) GetByEmail(ctx context.Context, email string) (*domain.Supervisor, error) {
	const query = `
        SELECT id, name, email, password_hash, created_at, updated_at
        FROM supervisors WHERE email=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *supervisorRepository) scanOne(row pgx.Row) (*domain.Supervisor, error) {
	var supervisor domain.Supervisor
	if err := row.Scan(
		&supervisor.ID,
		&supervisor.Name,
		&supervisor.Email,
		&supervisor.PasswordHash,
		&supervisor.CreatedAt,
		&supervisor.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &supervisor, nil
}
