package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/attendance-service/internal/auth"
	"github.com/spec-kit/attendance-service/internal/clock"
	"github.com/spec-kit/attendance-service/internal/domain"
	"github.com/spec-kit/attendance-service/internal/repository"
	apperrors "github.com/spec-kit/attendance-service/pkg/util"
)

const refreshTokenBytes = 32

// Session is an issued access/refresh token pair plus the identity they are
// bound to.
type Session struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
	Identity         domain.Identity
}

// SessionService mints signed access tokens and opaque rotating refresh
// tokens. Refresh tokens are single-use: every exchange revokes the presented
// token before issuing a replacement, so a replayed token is rejected even if
// stolen.
type SessionService struct {
	refreshTokens repository.RefreshTokenRepository
	supervisors   repository.SupervisorRepository
	employees     repository.EmployeeRepository
	tokens        *auth.TokenManager
	clk           clock.Clock
	refreshTTL    time.Duration
	logger        *zap.Logger
}

// SessionDependencies encapsulates collaborator requirements.
type SessionDependencies struct {
	RefreshTokenRepo repository.RefreshTokenRepository
	SupervisorRepo   repository.SupervisorRepository
	EmployeeRepo     repository.EmployeeRepository
	TokenManager     *auth.TokenManager
	Clock            clock.Clock
	RefreshTTL       time.Duration
	Logger           *zap.Logger
}

// NewSessionService builds the service.
func NewSessionService(deps SessionDependencies) *SessionService {
	ttl := deps.RefreshTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		refreshTokens: deps.RefreshTokenRepo,
		supervisors:   deps.SupervisorRepo,
		employees:     deps.EmployeeRepo,
		tokens:        deps.TokenManager,
		clk:           deps.Clock,
		refreshTTL:    ttl,
		logger:        logger,
	}
}

// IssueSession produces an access/refresh pair for an authenticated identity.
func (s *SessionService) IssueSession(ctx context.Context, identity domain.Identity) (*Session, error) {
	return s.issue(ctx, identity, s.clk.Now())
}

// Refresh exchanges a refresh token for a fresh pair. The presented token is
// revoked in the same store operation that confirms it is valid; a client
// that replays an already-exchanged token (a second device racing it, or an
// attacker) is rejected with an invalid-or-expired error.
func (s *SessionService) Refresh(ctx context.Context, presented string) (*Session, error) {
	now := s.clk.Now()

	owner, err := s.refreshTokens.Consume(ctx, presented, now)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewInvalidOrExpired("refresh token invalid or expired")
		}
		return nil, apperrors.NewStorageFailure(err)
	}

	identity, err := s.resolveOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, identity, now)
}

// Logout revokes the refresh token. Access tokens stay valid until expiry;
// they are stateless and never stored.
func (s *SessionService) Logout(ctx context.Context, presented string) error {
	if err := s.refreshTokens.Revoke(ctx, presented); err != nil {
		return apperrors.NewStorageFailure(err)
	}
	return nil
}

func (s *SessionService) issue(ctx context.Context, identity domain.Identity, now time.Time) (*Session, error) {
	accessToken, accessExp, err := s.tokens.GenerateToken(identity, now)
	if err != nil {
		return nil, err
	}

	raw, err := auth.NewOpaqueToken(refreshTokenBytes)
	if err != nil {
		return nil, err
	}

	refreshToken := &domain.RefreshToken{
		Token:     raw,
		Owner:     domain.Owner{Kind: identity.Role, ID: identity.ID},
		IssuedAt:  now,
		ExpiresAt: now.Add(s.refreshTTL),
	}
	if err := s.refreshTokens.Create(ctx, refreshToken); err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}

	return &Session{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExp,
		RefreshToken:     raw,
		RefreshExpiresAt: refreshToken.ExpiresAt,
		Identity:         identity,
	}, nil
}

func (s *SessionService) resolveOwner(ctx context.Context, owner domain.Owner) (domain.Identity, error) {
	switch owner.Kind {
	case domain.RoleSupervisor:
		supervisor, err := s.supervisors.GetByID(ctx, owner.ID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return domain.Identity{}, apperrors.NewNotFound("supervisor", map[string]any{"supervisor_id": owner.ID})
			}
			return domain.Identity{}, apperrors.NewStorageFailure(err)
		}
		return domain.Identity{ID: supervisor.ID, DisplayName: supervisor.Name, Role: domain.RoleSupervisor}, nil
	case domain.RoleEmployee:
		employee, err := s.employees.GetByID(ctx, owner.ID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return domain.Identity{}, apperrors.NewNotFound("employee", map[string]any{"employee_id": owner.ID})
			}
			return domain.Identity{}, apperrors.NewStorageFailure(err)
		}
		return domain.Identity{ID: employee.ID, DisplayName: employee.Name, Role: domain.RoleEmployee}, nil
	default:
		return domain.Identity{}, apperrors.NewStorageFailure(repository.ErrOwnerIntegrity)
	}
}
