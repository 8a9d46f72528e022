package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/attendance-service/internal/auth"
	"github.com/spec-kit/attendance-service/internal/domain"
	"github.com/spec-kit/attendance-service/internal/repository"
	apperrors "github.com/spec-kit/attendance-service/pkg/util"
)

// ScanDirection selects the attendance transition a QR scan drives.
type ScanDirection string

const (
	ScanDirectionIn  ScanDirection = "in"
	ScanDirectionOut ScanDirection = "out"
)

// AuthService composes sessions, QR tokens, and attendance into the
// outward-facing authentication flows. Supervisors authenticate with a
// password; employees authenticate by identifier alone or via a QR token,
// the low-friction kiosk flow. Its only logic is sequencing; failures from
// the composed services propagate unchanged.
type AuthService struct {
	supervisors repository.SupervisorRepository
	employees   repository.EmployeeRepository
	hasher      auth.Hasher
	sessions    *SessionService
	qrTokens    *QRService
	attendance  *AttendanceService
	logger      *zap.Logger
}

// AuthDependencies encapsulates collaborator requirements for the facade.
type AuthDependencies struct {
	SupervisorRepo repository.SupervisorRepository
	EmployeeRepo   repository.EmployeeRepository
	Hasher         auth.Hasher
	Sessions       *SessionService
	QRTokens       *QRService
	Attendance     *AttendanceService
	Logger         *zap.Logger
}

// NewAuthService builds the facade.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		supervisors: deps.SupervisorRepo,
		employees:   deps.EmployeeRepo,
		hasher:      deps.Hasher,
		sessions:    deps.Sessions,
		qrTokens:    deps.QRTokens,
		attendance:  deps.Attendance,
		logger:      logger,
	}
}

// LoginSupervisor authenticates a supervisor by username-or-email plus
// password. Lookup misses and hash mismatches produce the same rejection so
// the response does not reveal which identifiers exist.
func (s *AuthService) LoginSupervisor(ctx context.Context, usernameOrEmail, password string) (*Session, error) {
	supervisor, err := s.supervisors.GetByNameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.NewStorageFailure(err)
	}
	if !s.hasher.Verify(password, supervisor.PasswordHash) {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	return s.sessions.IssueSession(ctx, domain.Identity{
		ID:          supervisor.ID,
		DisplayName: supervisor.Name,
		Role:        domain.RoleSupervisor,
	})
}

// LoginEmployee authenticates an employee by username-or-email alone.
func (s *AuthService) LoginEmployee(ctx context.Context, usernameOrEmail string) (*Session, error) {
	employee, err := s.employees.GetByNameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("employee", nil)
		}
		return nil, apperrors.NewStorageFailure(err)
	}
	return s.employeeSession(ctx, employee)
}

// LoginEmployeeByID authenticates an employee directly by id, the variant the
// kiosk uses after a badge lookup.
func (s *AuthService) LoginEmployeeByID(ctx context.Context, id string) (*Session, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("employee", map[string]any{"employee_id": id})
		}
		return nil, apperrors.NewStorageFailure(err)
	}
	return s.employeeSession(ctx, employee)
}

// Refresh exchanges a refresh token for a new session.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	return s.sessions.Refresh(ctx, refreshToken)
}

// Logout revokes the presented refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.sessions.Logout(ctx, refreshToken)
}

// ScanQR consumes a QR token and drives the requested attendance transition
// for the employee it is bound to. The direction is checked first so a
// malformed request does not burn the single-use token.
func (s *AuthService) ScanQR(ctx context.Context, token string, direction ScanDirection) (*domain.AttendanceRecord, error) {
	if direction != ScanDirectionIn && direction != ScanDirectionOut {
		return nil, apperrors.NewValidationError("direction must be in or out", nil)
	}

	employeeID, err := s.qrTokens.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	if direction == ScanDirectionIn {
		return s.attendance.CheckIn(ctx, employeeID)
	}
	return s.attendance.CheckOut(ctx, employeeID)
}

// RegisterSupervisor creates a supervisor account with a hashed password.
func (s *AuthService) RegisterSupervisor(ctx context.Context, name, email, password string) (*domain.Supervisor, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperrors.NewValidationError("name, email, password required", nil)
	}

	if _, err := s.supervisors.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.NewStorageFailure(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	supervisor := &domain.Supervisor{Name: name, Email: email, PasswordHash: hash}
	if err := s.supervisors.Create(ctx, supervisor); err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}
	return supervisor, nil
}

func (s *AuthService) employeeSession(ctx context.Context, employee *domain.Employee) (*Session, error) {
	if !employee.Active {
		return nil, apperrors.NewNotFound("employee", map[string]any{"employee_id": employee.ID})
	}
	return s.sessions.IssueSession(ctx, domain.Identity{
		ID:          employee.ID,
		DisplayName: employee.Name,
		Role:        domain.RoleEmployee,
	})
}
