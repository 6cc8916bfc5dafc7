// Package jwt issues and verifies HS256 bearer tokens.
package jwt

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every verification failure. The concrete reason is
// only logged, never returned, so callers cannot tell failure modes apart.
var ErrInvalidToken = errors.New("invalid token")

// Config contains JWT settings.
type Config struct {
	SecretKey     string
	TokenDuration time.Duration
}

// Authenticator signs and verifies tokens with a process-wide secret.
type Authenticator struct {
	secret   []byte
	duration time.Duration
	now      func() time.Time
}

// NewAuthenticator creates a new JWT authenticator.
func NewAuthenticator(cfg Config) *Authenticator {
	return &Authenticator{
		secret:   []byte(cfg.SecretKey),
		duration: cfg.TokenDuration,
		now:      time.Now,
	}
}

// Issue returns a signed token whose subject is userID.
func (a *Authenticator) Issue(userID string) (string, error) {
	now := a.now()
	claims := gojwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(now.Add(a.duration)),
	}

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify checks the signature and expiry of token and returns its subject.
func (a *Authenticator) Verify(token string) (string, error) {
	var claims gojwt.RegisteredClaims

	parsed, err := gojwt.ParseWithClaims(token, &claims,
		func(_ *gojwt.Token) (interface{}, error) {
			return a.secret, nil
		},
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithStrictDecoding(),
		gojwt.WithTimeFunc(a.now),
	)
	if err != nil {
		slog.Debug("token rejected", "error", err)
		return "", ErrInvalidToken
	}

	if !parsed.Valid || claims.Subject == "" {
		slog.Debug("token rejected", "error", "missing subject")
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
