package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/attendance-service/internal/auth"
	"github.com/spec-kit/attendance-service/internal/domain"
	"github.com/spec-kit/attendance-service/internal/events"
	"github.com/spec-kit/attendance-service/internal/repository"
	"github.com/spec-kit/attendance-service/internal/service"
)

// fakeClock is a settable clock shared by all services in a fixture.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeEmployeeRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{byID: make(map[string]*domain.Employee)}
}

func (r *fakeEmployeeRepo) Create(_ context.Context, employee *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	employee.ID = uuid.NewString()
	copied := *employee
	r.byID[employee.ID] = &copied
	return nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, employee *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[employee.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *employee
	r.byID[employee.ID] = &copied
	return nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	employee, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *employee
	return &copied, nil
}

func (r *fakeEmployeeRepo) GetByNameOrEmail(_ context.Context, identifier string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, employee := range r.byID {
		if employee.Name == identifier || employee.Email == identifier {
			copied := *employee
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, employee := range r.byID {
		if employee.Email == email {
			copied := *employee
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeEmployeeRepo) ListBySupervisor(_ context.Context, supervisorID string) ([]domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var employees []domain.Employee
	for _, employee := range r.byID {
		if employee.SupervisorID == supervisorID {
			employees = append(employees, *employee)
		}
	}
	return employees, nil
}

type fakeSupervisorRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Supervisor
}

func newFakeSupervisorRepo() *fakeSupervisorRepo {
	return &fakeSupervisorRepo{byID: make(map[string]*domain.Supervisor)}
}

func (r *fakeSupervisorRepo) Create(_ context.Context, supervisor *domain.Supervisor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	supervisor.ID = uuid.NewString()
	copied := *supervisor
	r.byID[supervisor.ID] = &copied
	return nil
}

func (r *fakeSupervisorRepo) GetByID(_ context.Context, id string) (*domain.Supervisor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	supervisor, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *supervisor
	return &copied, nil
}

func (r *fakeSupervisorRepo) GetByNameOrEmail(_ context.Context, identifier string) (*domain.Supervisor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, supervisor := range r.byID {
		if supervisor.Name == identifier || supervisor.Email == identifier {
			copied := *supervisor
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeSupervisorRepo) GetByEmail(_ context.Context, email string) (*domain.Supervisor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, supervisor := range r.byID {
		if supervisor.Email == email {
			copied := *supervisor
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeQRTokenRepo struct {
	mu      sync.Mutex
	byToken map[string]*domain.QRToken
}

func newFakeQRTokenRepo() *fakeQRTokenRepo {
	return &fakeQRTokenRepo{byToken: make(map[string]*domain.QRToken)}
}

func (r *fakeQRTokenRepo) Create(_ context.Context, token *domain.QRToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = uuid.NewString()
	copied := *token
	r.byToken[token.Token] = &copied
	return nil
}

func (r *fakeQRTokenRepo) GetByToken(_ context.Context, tokenStr string) (*domain.QRToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.byToken[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *token
	return &copied, nil
}

// InvalidateAndCreate mirrors the store transaction: invalidating prior
// usable tokens and inserting the replacement happen under one lock, so
// concurrent issuers cannot leave two usable tokens behind.
func (r *fakeQRTokenRepo) InvalidateAndCreate(_ context.Context, token *domain.QRToken, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, existing := range r.byToken {
		if existing.EmployeeID == token.EmployeeID && !existing.Used && now.Before(existing.ExpiresAt) {
			existing.Used = true
			count++
		}
	}
	token.ID = uuid.NewString()
	copied := *token
	r.byToken[token.Token] = &copied
	return count, nil
}

// Consume mirrors the conditional UPDATE: the usability check and the used
// flip happen under one lock so concurrent callers cannot both succeed.
func (r *fakeQRTokenRepo) Consume(_ context.Context, tokenStr string, now time.Time) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.byToken[tokenStr]
	if !ok || token.Used || !now.Before(token.ExpiresAt) {
		return "", pgx.ErrNoRows
	}
	token.Used = true
	return token.EmployeeID, nil
}

type fakeRefreshTokenRepo struct {
	mu      sync.Mutex
	byToken map[string]*domain.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{byToken: make(map[string]*domain.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *domain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = uuid.NewString()
	copied := *token
	r.byToken[token.Token] = &copied
	return nil
}

func (r *fakeRefreshTokenRepo) Consume(_ context.Context, tokenStr string, now time.Time) (domain.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.byToken[tokenStr]
	if !ok || token.Revoked || !now.Before(token.ExpiresAt) {
		return domain.Owner{}, pgx.ErrNoRows
	}
	token.Revoked = true
	if token.Owner.Kind != domain.RoleSupervisor && token.Owner.Kind != domain.RoleEmployee {
		return domain.Owner{}, repository.ErrOwnerIntegrity
	}
	return token.Owner, nil
}

func (r *fakeRefreshTokenRepo) Revoke(_ context.Context, tokenStr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token, ok := r.byToken[tokenStr]; ok {
		token.Revoked = true
	}
	return nil
}

// insert stores a raw row, bypassing Create. Used to model corrupt data.
func (r *fakeRefreshTokenRepo) insert(token *domain.RefreshToken) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byToken[token.Token] = token
}

type fakeAttendanceRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.AttendanceRecord
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{byID: make(map[string]*domain.AttendanceRecord)}
}

func (r *fakeAttendanceRepo) Create(_ context.Context, record *domain.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.ID = uuid.NewString()
	copied := *record
	r.byID[record.ID] = &copied
	return nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, record *domain.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[record.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *record
	r.byID[record.ID] = &copied
	return nil
}

func (r *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.byID {
		if record.EmployeeID == employeeID && record.Date.Equal(date) {
			copied := *record
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAttendanceRepo) ListByEmployee(_ context.Context, employeeID string, filter repository.AttendanceFilter) ([]domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var records []domain.AttendanceRecord
	for _, record := range r.byID {
		if record.EmployeeID != employeeID {
			continue
		}
		if filter.From != nil && record.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && record.Date.After(*filter.To) {
			continue
		}
		records = append(records, *record)
	}
	return records, nil
}

// fakeRenderer records the last payload and returns a deterministic artifact.
type fakeRenderer struct {
	mu          sync.Mutex
	lastPayload []byte
}

func (r *fakeRenderer) Render(payload []byte) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPayload = append([]byte(nil), payload...)
	return "rendered:" + string(payload), nil
}

// fixture holds all test dependencies wired the way main does it.
type fixture struct {
	employees     *fakeEmployeeRepo
	supervisors   *fakeSupervisorRepo
	qrTokenRepo   *fakeQRTokenRepo
	refreshTokens *fakeRefreshTokenRepo
	records       *fakeAttendanceRepo
	renderer      *fakeRenderer
	clk           *fakeClock
	hasher        auth.BcryptHasher

	qrTokens   *service.QRService
	attendance *service.AttendanceService
	sessions   *service.SessionService
	authSvc    *service.AuthService
	reports    *service.ReportService
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		employees:     newFakeEmployeeRepo(),
		supervisors:   newFakeSupervisorRepo(),
		qrTokenRepo:   newFakeQRTokenRepo(),
		refreshTokens: newFakeRefreshTokenRepo(),
		records:       newFakeAttendanceRepo(),
		renderer:      &fakeRenderer{},
		clk:           &fakeClock{now: time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)},
		hasher:        auth.NewBcryptHasher(4),
	}

	tokenManager, err := auth.NewTokenManager("test-signing-secret", time.Hour)
	require.NoError(t, err)

	dispatcher := events.NewInMemoryDispatcher()

	f.sessions = service.NewSessionService(service.SessionDependencies{
		RefreshTokenRepo: f.refreshTokens,
		SupervisorRepo:   f.supervisors,
		EmployeeRepo:     f.employees,
		TokenManager:     tokenManager,
		Clock:            f.clk,
		RefreshTTL:       7 * 24 * time.Hour,
	})
	f.qrTokens = service.NewQRService(service.QRDependencies{
		EmployeeRepo: f.employees,
		QRTokenRepo:  f.qrTokenRepo,
		Renderer:     f.renderer,
		Clock:        f.clk,
		TTL:          5 * time.Minute,
		Dispatcher:   dispatcher,
	})
	f.attendance = service.NewAttendanceService(service.AttendanceDependencies{
		EmployeeRepo:   f.employees,
		AttendanceRepo: f.records,
		Clock:          f.clk,
		Dispatcher:     dispatcher,
	})
	f.authSvc = service.NewAuthService(service.AuthDependencies{
		SupervisorRepo: f.supervisors,
		EmployeeRepo:   f.employees,
		Hasher:         f.hasher,
		Sessions:       f.sessions,
		QRTokens:       f.qrTokens,
		Attendance:     f.attendance,
	})
	f.reports = service.NewReportService(f.employees, f.records)

	return f
}

func (f *fixture) createSupervisor(t *testing.T, name, email, password string) *domain.Supervisor {
	t.Helper()

	hash, err := f.hasher.Hash(password)
	require.NoError(t, err)

	supervisor := &domain.Supervisor{Name: name, Email: email, PasswordHash: hash}
	require.NoError(t, f.supervisors.Create(context.Background(), supervisor))
	return supervisor
}

func (f *fixture) createEmployee(t *testing.T, name, email string, hourlyRate float64, active bool) *domain.Employee {
	t.Helper()

	employee := &domain.Employee{
		Name:         name,
		Email:        email,
		HourlyRate:   hourlyRate,
		Active:       active,
		SupervisorID: uuid.NewString(),
	}
	require.NoError(t, f.employees.Create(context.Background(), employee))
	return employee
}
