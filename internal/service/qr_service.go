package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/attendance-service/internal/auth"
	"github.com/spec-kit/attendance-service/internal/clock"
	"github.com/spec-kit/attendance-service/internal/domain"
	"github.com/spec-kit/attendance-service/internal/events"
	"github.com/spec-kit/attendance-service/internal/persistence"
	"github.com/spec-kit/attendance-service/internal/qr"
	"github.com/spec-kit/attendance-service/internal/repository"
	apperrors "github.com/spec-kit/attendance-service/pkg/util"
)

const qrTokenBytes = 32

// QRService issues and consumes single-use time-boxed check-in tokens.
type QRService struct {
	employees  repository.EmployeeRepository
	tokens     repository.QRTokenRepository
	renderer   qr.Renderer
	clk        clock.Clock
	ttl        time.Duration
	cache      *persistence.Redis
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// QRDependencies encapsulates collaborator requirements for the QR service.
type QRDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	QRTokenRepo  repository.QRTokenRepository
	Renderer     qr.Renderer
	Clock        clock.Clock
	TTL          time.Duration
	Cache        *persistence.Redis
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewQRService builds the service.
func NewQRService(deps QRDependencies) *QRService {
	ttl := deps.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QRService{
		employees:  deps.EmployeeRepo,
		tokens:     deps.QRTokenRepo,
		renderer:   deps.Renderer,
		clk:        deps.Clock,
		ttl:        ttl,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// qrPayload is the JSON encoded into the displayed code.
type qrPayload struct {
	Token      string    `json:"token"`
	EmployeeID string    `json:"employee_id"`
	IssuedAt   time.Time `json:"issued_at"`
}

// Issue mints a fresh token for the employee. Invalidating any prior
// still-usable token and inserting the replacement happen in one store
// transaction, so at most one usable token exists per employee at any
// instant; a screenshotted or printed code dies the moment a new one is
// requested.
func (s *QRService) Issue(ctx context.Context, employeeID string) (*domain.QRToken, error) {
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("employee", map[string]any{"employee_id": employeeID})
		}
		return nil, apperrors.NewStorageFailure(err)
	}
	if !employee.Active {
		return nil, apperrors.NewNotFound("employee", map[string]any{"employee_id": employeeID})
	}

	now := s.clk.Now()

	value, err := auth.NewOpaqueToken(qrTokenBytes)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(qrPayload{Token: value, EmployeeID: employeeID, IssuedAt: now})
	if err != nil {
		return nil, err
	}
	rendered, err := s.renderer.Render(payload)
	if err != nil {
		return nil, err
	}

	token := &domain.QRToken{
		Token:        value,
		EmployeeID:   employeeID,
		IssuedAt:     now,
		ExpiresAt:    now.Add(s.ttl),
		Used:         false,
		RenderedCode: rendered,
	}
	invalidated, err := s.tokens.InvalidateAndCreate(ctx, token, now)
	if err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}

	s.cacheRendered(ctx, token)
	s.publishIssued(ctx, token, invalidated)

	return token, nil
}

// Validate consumes the token: the first successful call flips it to used in
// the same store operation that confirms it is usable, so a second call (or a
// concurrent racer) always fails. Returns the bound employee id.
func (s *QRService) Validate(ctx context.Context, tokenStr string) (string, error) {
	now := s.clk.Now()

	employeeID, err := s.tokens.Consume(ctx, tokenStr, now)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", apperrors.NewInvalidOrExpired("qr token invalid or expired")
		}
		return "", apperrors.NewStorageFailure(err)
	}
	return employeeID, nil
}

// cacheRendered stores the rendered code in redis keyed by token value with
// the token's own TTL. Best effort; the store row is authoritative.
func (s *QRService) cacheRendered(ctx context.Context, token *domain.QRToken) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	if err := s.cache.Client.Set(ctx, "qr:"+token.Token, token.RenderedCode, s.ttl).Err(); err != nil {
		s.logger.Warn("failed to cache rendered qr code", zap.Error(err))
	}
}

func (s *QRService) publishIssued(ctx context.Context, token *domain.QRToken, invalidated int64) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       events.EventQRTokenIssued,
		EmployeeID: token.EmployeeID,
		Timestamp:  token.IssuedAt,
		Payload: events.QRTokenIssuedPayload{
			IssuedAt:    token.IssuedAt,
			ExpiresAt:   token.ExpiresAt,
			Invalidated: invalidated,
		},
	})
}
