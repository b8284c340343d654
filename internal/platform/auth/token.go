package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const staffSubject = "staff"

var (
	// ErrTokenInvalid indicates the token failed signature or claim validation.
	ErrTokenInvalid = errors.New("auth: invalid token")
	// ErrTokenExpired indicates the token was valid but has expired.
	ErrTokenExpired = errors.New("auth: token expired")
)

// TokenManager issues and verifies the signed, time-limited staff tokens used
// by the admin surface. The order lifecycle only ever asks it a yes/no
// question: is this request authenticated.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenManagerConfig configures the TokenManager.
type TokenManagerConfig struct {
	Secret string
	TTL    time.Duration
	Clock  func() time.Time
}

// NewTokenManager constructs a TokenManager validating required configuration.
func NewTokenManager(cfg TokenManagerConfig) (*TokenManager, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, errors.New("auth: token secret is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    clock,
	}, nil
}

// Issue creates a signed staff token valid for the configured TTL.
func (m *TokenManager) Issue() (string, time.Time, error) {
	if m == nil {
		return "", time.Time{}, errors.New("auth: token manager is nil")
	}
	now := m.now().UTC()
	expiresAt := now.Add(m.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   staffSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a staff token.
func (m *TokenManager) Verify(raw string) error {
	if m == nil {
		return ErrTokenInvalid
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrTokenInvalid
	}

	// The library's built-in claim validation reads the wall clock; expiry
	// is checked against m.now instead so the clock stays injectable.
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	_, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return ErrTokenInvalid
	}
	if claims.Subject != staffSubject {
		return ErrTokenInvalid
	}
	if claims.ExpiresAt == nil {
		return ErrTokenInvalid
	}
	if !m.now().UTC().Before(claims.ExpiresAt.Time) {
		return ErrTokenExpired
	}
	return nil
}
