package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/attendance-service/internal/domain"
	"github.com/spec-kit/attendance-service/pkg/util"
)

func supervisorIdentity(s *domain.Supervisor) domain.Identity {
	return domain.Identity{ID: s.ID, DisplayName: s.Name, Role: domain.RoleSupervisor}
}

func TestIssueSessionProducesTokenPair(t *testing.T) {
	f := setupFixture(t)
	supervisor := f.createSupervisor(t, "carla", "carla@example.com", "secret")

	session, err := f.sessions.IssueSession(context.Background(), supervisorIdentity(supervisor))
	require.NoError(t, err)
	require.NotEmpty(t, session.AccessToken)
	require.NotEmpty(t, session.RefreshToken)
	require.Equal(t, f.clk.Now().Add(time.Hour), session.AccessExpiresAt)
	require.Equal(t, f.clk.Now().Add(7*24*time.Hour), session.RefreshExpiresAt)
	require.Equal(t, domain.RoleSupervisor, session.Identity.Role)
}

func TestRefreshRotatesToken(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	supervisor := f.createSupervisor(t, "carla", "carla@example.com", "secret")

	first, err := f.sessions.IssueSession(ctx, supervisorIdentity(supervisor))
	require.NoError(t, err)

	second, err := f.sessions.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)
	require.Equal(t, supervisor.ID, second.Identity.ID)

	// The exchanged token is dead; replaying it must fail.
	_, err = f.sessions.Refresh(ctx, first.RefreshToken)
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.CodeInvalidOrExpired))

	// The replacement still works.
	third, err := f.sessions.Refresh(ctx, second.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, second.RefreshToken, third.RefreshToken)
}

func TestRefreshExpiredTokenRejected(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	supervisor := f.createSupervisor(t, "carla", "carla@example.com", "secret")

	session, err := f.sessions.IssueSession(ctx, supervisorIdentity(supervisor))
	require.NoError(t, err)

	f.clk.Advance(7*24*time.Hour + time.Minute)

	_, err = f.sessions.Refresh(ctx, session.RefreshToken)
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.CodeInvalidOrExpired))
}

func TestRefreshUnknownTokenRejected(t *testing.T) {
	f := setupFixture(t)

	_, err := f.sessions.Refresh(context.Background(), "no-such-token")
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.CodeInvalidOrExpired))
}

func TestRefreshCorruptOwnerSurfacesStorageFailure(t *testing.T) {
	f := setupFixture(t)
	now := f.clk.Now()

	f.refreshTokens.insert(&domain.RefreshToken{
		ID:        "corrupt",
		Token:     "corrupt-token",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})

	_, err := f.sessions.Refresh(context.Background(), "corrupt-token")
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.CodeStorageFailure))
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	supervisor := f.createSupervisor(t, "carla", "carla@example.com", "secret")

	session, err := f.sessions.IssueSession(ctx, supervisorIdentity(supervisor))
	require.NoError(t, err)

	require.NoError(t, f.sessions.Logout(ctx, session.RefreshToken))

	_, err = f.sessions.Refresh(ctx, session.RefreshToken)
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.CodeInvalidOrExpired))
}

func TestLogoutUnknownTokenIsNoOp(t *testing.T) {
	f := setupFixture(t)

	require.NoError(t, f.sessions.Logout(context.Background(), "no-such-token"))
}
