// Package auth issues and verifies resident session tokens.
package auth

import (
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	apperrors "maison/pkg/errors"
	"maison/pkg/model"
)

const issuer = "maison-residents"

type SessionClaims struct {
	jwt.RegisteredClaims
	Name      string `json:"name"`
	Role      string `json:"role"`
	Apartment string `json:"apartment,omitempty"`
}

// Signer signs HS256 session tokens with a shared secret.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// CreateSessionToken returns a signed token and its expiry for the
// given resident.
func (s *Signer) CreateSessionToken(resident *model.Resident) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.ttl)

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   resident.ID,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		Name:      resident.Name,
		Role:      resident.Role,
		Apartment: resident.Apartment,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperrors.Internal("failed to sign session token", err)
	}

	return signed, expiresAt, nil
}

// ParseSessionToken verifies the signature and expiry of a session
// token and returns its claims.
func (s *Signer) ParseSessionToken(tokenString string) (*SessionClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, apperrors.Unauthorized("missing session token")
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(30*time.Second),
	)
	if err != nil || !parsed.Valid {
		return nil, apperrors.Unauthorized("invalid or expired session token")
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return nil, apperrors.Unauthorized("session token has no subject")
	}

	return claims, nil
}
