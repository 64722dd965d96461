package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type TokenClaims struct {
	TokenType TokenType `json:"token_type"`
	Email     string    `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the subject as a UUID.
func (c *TokenClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

type TokenPair struct {
	Access           string
	Refresh          string
	RefreshID        string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// TokenManager signs and verifies HS256 access/refresh tokens. Each type has its
// own secret so a refresh token can never pass as an access token.
type TokenManager struct {
	cfg JWTConfig
	now func() time.Time
}

func NewTokenManager(cfg JWTConfig) *TokenManager {
	return &TokenManager{cfg: cfg, now: time.Now}
}

func (m *TokenManager) IssuePair(userID uuid.UUID, email string) (*TokenPair, error) {
	now := m.now()

	access, accessExp, _, err := m.sign(AccessToken, userID, email, now)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, refreshID, err := m.sign(RefreshToken, userID, email, now)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		Access:           access,
		Refresh:          refresh,
		RefreshID:        refreshID,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (m *TokenManager) sign(typ TokenType, userID uuid.UUID, email string, now time.Time) (string, time.Time, string, error) {
	expiresAt := now.Add(m.ttl(typ))
	id := uuid.NewString()

	claims := TokenClaims{
		TokenType: typ,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.secret(typ)))
	if err != nil {
		return "", time.Time{}, "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, expiresAt, id, nil
}

// Parse verifies signature, expiry and token type.
func (m *TokenManager) Parse(raw string, typ TokenType) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(m.secret(typ)), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != typ {
		return nil, ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *TokenManager) secret(typ TokenType) string {
	if typ == RefreshToken {
		return m.cfg.RefreshSecret
	}
	return m.cfg.AccessSecret
}

func (m *TokenManager) ttl(typ TokenType) time.Duration {
	if typ == RefreshToken {
		return m.cfg.RefreshTTL
	}
	return m.cfg.AccessTTL
}
