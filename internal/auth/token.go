package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/attendance-service/internal/domain"
)

// TokenManager handles issuing and validating JWT access tokens. The signing
// secret is mandatory configuration; there is deliberately no fallback value.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager. It fails on an empty secret so a
// misconfigured deployment cannot sign tokens with a known key.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("jwt signing secret is required")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}, nil
}

// Claims describes the JWT payload: identity and role only, never secrets.
type Claims struct {
	SubjectID   string      `json:"sub"`
	DisplayName string      `json:"name"`
	Role        domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken builds and signs a JWT for the identity. The caller supplies
// the issuance instant so each operation reads its clock exactly once.
func (tm *TokenManager) GenerateToken(identity domain.Identity, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		SubjectID:   identity.ID,
		DisplayName: identity.DisplayName,
		Role:        identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates and returns claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
