package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/attendance-service/internal/domain"
	"github.com/spec-kit/attendance-service/internal/service"
	"github.com/spec-kit/attendance-service/pkg/util"
)

func TestLoginSupervisor(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	f.createSupervisor(t, "carla", "carla@example.com", "hunter2")

	session, err := f.authSvc.LoginSupervisor(ctx, "carla", "hunter2")
	require.NoError(t, err)
	require.Equal(t, domain.RoleSupervisor, session.Identity.Role)
	require.NotEmpty(t, session.AccessToken)

	// Email works as identifier too.
	session, err = f.authSvc.LoginSupervisor(ctx, "carla@example.com", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "carla", session.Identity.DisplayName)
}

func TestLoginSupervisorWrongPassword(t *testing.T) {
	f := setupFixture(t)
	f.createSupervisor(t, "carla", "carla@example.com", "hunter2")

	_, err := f.authSvc.LoginSupervisor(context.Background(), "carla", "wrong")
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.CodeUnauthorized))
}

func TestLoginSupervisorUnknownIdentifier(t *testing.T) {
	f := setupFixture(t)

	_, err := f.authSvc.LoginSupervisor(context.Background(), "nobody", "hunter2")
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.CodeUnauthorized))
}

func TestLoginEmployee(t *testing.T) {
	f := setupFixture(t)
	employee := f.createEmployee(t, "Ana", "ana@example.com", 10, true)

	session, err := f.authSvc.LoginEmployee(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.Equal(t, domain.RoleEmployee, session.Identity.Role)
	require.Equal(t, employee.ID, session.Identity.ID)
}

func TestLoginEmployeeByID(t *testing.T) {
	f := setupFixture(t)
	employee := f.createEmployee(t, "Ana", "ana@example.com", 10, true)

	session, err := f.authSvc.LoginEmployeeByID(context.Background(), employee.ID)
	require.NoError(t, err)
	require.Equal(t, employee.ID, session.Identity.ID)
}

func TestLoginEmployeeInactiveRejected(t *testing.T) {
	f := setupFixture(t)
	f.createEmployee(t, "Ana", "ana@example.com", 10, false)

	_, err := f.authSvc.LoginEmployee(context.Background(), "ana@example.com")
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.CodeNotFound))
}

func TestLoginEmployeeUnknownRejected(t *testing.T) {
	f := setupFixture(t)

	_, err := f.authSvc.LoginEmployee(context.Background(), "nobody@example.com")
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.CodeNotFound))
}

func TestRegisterSupervisor(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	supervisor, err := f.authSvc.RegisterSupervisor(ctx, "carla", "carla@example.com", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, supervisor.ID)
	require.NotEqual(t, "hunter2", supervisor.PasswordHash)

	session, err := f.authSvc.LoginSupervisor(ctx, "carla", "hunter2")
	require.NoError(t, err)
	require.Equal(t, supervisor.ID, session.Identity.ID)
}

func TestRegisterSupervisorDuplicateEmail(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	_, err := f.authSvc.RegisterSupervisor(ctx, "carla", "carla@example.com", "hunter2")
	require.NoError(t, err)

	_, err = f.authSvc.RegisterSupervisor(ctx, "other", "carla@example.com", "hunter2")
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.CodeConflict))
}

func TestRegisterSupervisorMissingFields(t *testing.T) {
	f := setupFixture(t)

	_, err := f.authSvc.RegisterSupervisor(context.Background(), "", "carla@example.com", "hunter2")
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.CodeValidationFailed))
}

func TestScanQRChecksIn(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	employee := f.createEmployee(t, "Ana", "ana@example.com", 10, true)

	token, err := f.qrTokens.Issue(ctx, employee.ID)
	require.NoError(t, err)

	record, err := f.authSvc.ScanQR(ctx, token.Token, service.ScanDirectionIn)
	require.NoError(t, err)
	require.Equal(t, employee.ID, record.EmployeeID)
	require.NotNil(t, record.CheckInAt)
}

func TestScanQRChecksOut(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	employee := f.createEmployee(t, "Ana", "ana@example.com", 10, true)

	inToken, err := f.qrTokens.Issue(ctx, employee.ID)
	require.NoError(t, err)
	_, err = f.authSvc.ScanQR(ctx, inToken.Token, service.ScanDirectionIn)
	require.NoError(t, err)

	outToken, err := f.qrTokens.Issue(ctx, employee.ID)
	require.NoError(t, err)
	record, err := f.authSvc.ScanQR(ctx, outToken.Token, service.ScanDirectionOut)
	require.NoError(t, err)
	require.NotNil(t, record.CheckOutAt)
}

func TestScanQRReplayRejected(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	employee := f.createEmployee(t, "Ana", "ana@example.com", 10, true)

	token, err := f.qrTokens.Issue(ctx, employee.ID)
	require.NoError(t, err)

	_, err = f.authSvc.ScanQR(ctx, token.Token, service.ScanDirectionIn)
	require.NoError(t, err)

	_, err = f.authSvc.ScanQR(ctx, token.Token, service.ScanDirectionOut)
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.CodeInvalidOrExpired))
}

func TestScanQRBadDirection(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	employee := f.createEmployee(t, "Ana", "ana@example.com", 10, true)

	token, err := f.qrTokens.Issue(ctx, employee.ID)
	require.NoError(t, err)

	_, err = f.authSvc.ScanQR(ctx, token.Token, service.ScanDirection("sideways"))
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.CodeValidationFailed))

	// The rejected request must not have consumed the token.
	record, err := f.authSvc.ScanQR(ctx, token.Token, service.ScanDirectionIn)
	require.NoError(t, err)
	require.Equal(t, employee.ID, record.EmployeeID)
}

func TestScanQRUnknownToken(t *testing.T) {
	f := setupFixture(t)

	_, err := f.authSvc.ScanQR(context.Background(), uuid.NewString(), service.ScanDirectionIn)
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.CodeInvalidOrExpired))
}
