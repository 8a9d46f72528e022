package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/attendance-service/internal/domain"
)

// ErrOwnerIntegrity reports a refresh token row whose owner columns are both
// set or both null. This is a data-integrity fault, not a normal rejection.
var ErrOwnerIntegrity = errors.New("refresh token owner integrity violation")

// RefreshTokenRepository manages session-continuation token persistence.
// Consume revokes and resolves the owner in one conditional statement, which
// is what makes rotation strict under concurrent refresh attempts.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	// Consume atomically revokes a still-valid token and returns its owner.
	// pgx.ErrNoRows means the token is unknown, revoked, or expired.
	Consume(ctx context.Context, token string, now time.Time) (domain.Owner, error)
	// Revoke marks a token revoked unconditionally (logout).
	Revoke(ctx context.Context, token string) error
}

type refreshTokenRepository struct {
	pool *pgxpool.Pool
}

// NewRefreshTokenRepository returns a Postgres-backed implementation.
func NewRefreshTokenRepository(pool *pgxpool.Pool) RefreshTokenRepository {
	return &refreshTokenRepository{pool: pool}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	const query = `
        INSERT INTO refresh_tokens (token, supervisor_id, employee_id, issued_at, expires_at, revoked)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`

	var supervisorID, employeeID *string
	switch token.Owner.Kind {
	case domain.RoleSupervisor:
		supervisorID = &token.Owner.ID
	case domain.RoleEmployee:
		employeeID = &token.Owner.ID
	default:
		return ErrOwnerIntegrity
	}

	return r.pool.QueryRow(ctx, query,
		token.Token,
		supervisorID,
		employeeID,
		token.IssuedAt,
		token.ExpiresAt,
		token.Revoked,
	).Scan(&token.ID)
}

func (r *refreshTokenRepository) Consume(ctx context.Context, tokenStr string, now time.Time) (domain.Owner, error) {
	const query = `
        UPDATE refresh_tokens SET revoked=true
        WHERE token=$1 AND revoked=false AND expires_at > $2
        RETURNING supervisor_id, employee_id`

	var supervisorID, employeeID *string
	if err := r.pool.QueryRow(ctx, query, tokenStr, now).Scan(&supervisorID, &employeeID); err != nil {
		if err == pgx.ErrNoRows {
			return domain.Owner{}, pgx.ErrNoRows
		}
		return domain.Owner{}, err
	}
	return resolveOwner(supervisorID, employeeID)
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, tokenStr string) error {
	const query = `
        UPDATE refresh_tokens SET revoked=true
        WHERE token=$1 AND revoked=false`

	_, err := r.pool.Exec(ctx, query, tokenStr)
	return err
}

// resolveOwner folds the two nullable owner columns into the tagged union.
// Exactly one must be set; anything else is corrupt data.
func resolveOwner(supervisorID, employeeID *string) (domain.Owner, error) {
	switch {
	case supervisorID != nil && employeeID == nil:
		return domain.Owner{Kind: domain.RoleSupervisor, ID: *supervisorID}, nil
	case employeeID != nil && supervisorID == nil:
		return domain.Owner{Kind: domain.RoleEmployee, ID: *employeeID}, nil
	default:
		return domain.Owner{}, ErrOwnerIntegrity
	}
}
