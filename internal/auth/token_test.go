package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/attendance-service/internal/auth"
	"github.com/spec-kit/attendance-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	manager, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	identity := domain.Identity{ID: "emp-1", DisplayName: "Ana", Role: domain.RoleEmployee}
	now := time.Now()

	token, expiresAt, err := manager.GenerateToken(identity, now)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, now.Add(time.Hour), expiresAt, time.Second)

	claims, err := manager.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "emp-1", claims.SubjectID)
	require.Equal(t, "Ana", claims.DisplayName)
	require.Equal(t, domain.RoleEmployee, claims.Role)
}

func TestTokenManagerRequiresSecret(t *testing.T) {
	_, err := auth.NewTokenManager("", time.Hour)
	require.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	manager, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	issuedAt := time.Now().Add(-2 * time.Hour)
	token, _, err := manager.GenerateToken(domain.Identity{ID: "emp-1", Role: domain.RoleEmployee}, issuedAt)
	require.NoError(t, err)

	_, err = manager.ParseToken(token)
	require.Error(t, err)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	manager, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	other, err := auth.NewTokenManager("other-secret", time.Hour)
	require.NoError(t, err)

	token, _, err := manager.GenerateToken(domain.Identity{ID: "emp-1", Role: domain.RoleEmployee}, time.Now())
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	require.Error(t, err)
}

func TestOpaqueTokenLengthAndUniqueness(t *testing.T) {
	first, err := auth.NewOpaqueToken(32)
	require.NoError(t, err)
	require.Len(t, first, 64)

	second, err := auth.NewOpaqueToken(32)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := auth.NewBcryptHasher(4)

	digest, err := hasher.Hash("hunter2")
	require.NoError(t, err)
	require.NotEqual(t, "hunter2", digest)

	require.True(t, hasher.Verify("hunter2", digest))
	require.False(t, hasher.Verify("wrong", digest))
}
