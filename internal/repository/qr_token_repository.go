package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/attendance-service/internal/domain"
)

// QRTokenRepository manages single-use check-in token persistence. The write
// paths are atomic: Consume is a single conditional statement, and
// InvalidateAndCreate runs in one transaction, so two concurrent requests can
// never leave an employee with two usable tokens.
type QRTokenRepository interface {
	Create(ctx context.Context, token *domain.QRToken) error
	GetByToken(ctx context.Context, token string) (*domain.QRToken, error)
	// InvalidateAndCreate marks every unused, unexpired token for the
	// employee as used and inserts the replacement in the same transaction.
	// Returns the number of tokens invalidated.
	InvalidateAndCreate(ctx context.Context, token *domain.QRToken, now time.Time) (int64, error)
	// Consume atomically flips used on a still-usable token and returns the
	// bound employee id. pgx.ErrNoRows means the token is unknown, already
	// used, or expired.
	Consume(ctx context.Context, token string, now time.Time) (string, error)
}

type qrTokenRepository struct {
	pool *pgxpool.Pool
}

// NewQRTokenRepository returns a Postgres-backed implementation.
func NewQRTokenRepository(pool *pgxpool.Pool) QRTokenRepository {
	return &qrTokenRepository{pool: pool}
}

func (r *qrTokenRepository) Create(ctx context.Context, token *domain.QRToken) error {
	const query = `
        INSERT INTO qr_tokens (token, employee_id, issued_at, expires_at, used, rendered_code)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		token.Token,
		token.EmployeeID,
		token.IssuedAt,
		token.ExpiresAt,
		token.Used,
		token.RenderedCode,
	).Scan(&token.ID)
}

func (r *qrTokenRepository) GetByToken(ctx context.Context, tokenStr string) (*domain.QRToken, error) {
	const query = `
        SELECT id, token, employee_id, issued_at, expires_at, used, rendered_code
        FROM qr_tokens WHERE token=$1`

	var token domain.QRToken
	if err := r.pool.QueryRow(ctx, query, tokenStr).Scan(
		&token.ID,
		&token.Token,
		&token.EmployeeID,
		&token.IssuedAt,
		&token.ExpiresAt,
		&token.Used,
		&token.RenderedCode,
	); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *qrTokenRepository) InvalidateAndCreate(ctx context.Context, token *domain.QRToken, now time.Time) (int64, error) {
	const invalidate = `
        UPDATE qr_tokens SET used=true
        WHERE employee_id=$1 AND used=false AND expires_at > $2`
	const insert = `
        INSERT INTO qr_tokens (token, employee_id, issued_at, expires_at, used, rendered_code)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx, invalidate, token.EmployeeID, now)
	if err != nil {
		return 0, err
	}

	if err := tx.QueryRow(ctx, insert,
		token.Token,
		token.EmployeeID,
		token.IssuedAt,
		token.ExpiresAt,
		token.Used,
		token.RenderedCode,
	).Scan(&token.ID); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *qrTokenRepository) Consume(ctx context.Context, tokenStr string, now time.Time) (string, error) {
	const query = `
        UPDATE qr_tokens SET used=true
        WHERE token=$1 AND used=false AND expires_at > $2
        RETURNING employee_id`

	var employeeID string
	if err := r.pool.QueryRow(ctx, query, tokenStr, now).Scan(&employeeID); err != nil {
		if err == pgx.ErrNoRows {
			return "", pgx.ErrNoRows
		}
		return "", err
	}
	return employeeID, nil
}
