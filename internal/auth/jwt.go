// Package auth verifies the access tokens issued by the hosted auth backend.
//
// Sign-up, login and session refresh all happen in that backend. What
// reaches this server is an HS256-signed JWT whose "sub" claim is the
// student's opaque user id:
//
//	HEADER.PAYLOAD.SIGNATURE
//	- Header:    {"alg":"HS256","typ":"JWT"}
//	- Payload:   {"sub":"<user id>","iss":"<issuer>","exp":1234567890}
//	- Signature: HMAC-SHA256(header+"."+payload, secret)
//
// Verification needs only the shared secret, no database lookup.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the lifetime of tokens minted by Generate.
const DefaultTTL = 15 * time.Minute

// TokenService signs and verifies access tokens with one HMAC secret.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService returns a TokenService for the given secret and issuer.
// The secret must be at least 16 characters; use 32 random bytes in
// production (JWT_SECRET=$(openssl rand -hex 32)).
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if issuer == "" {
		return nil, errors.New("auth: JWT issuer is required")
	}
	return &TokenService{secret: []byte(secret), issuer: issuer}, nil
}

// Generate mints a token for userID that expires after DefaultTTL.
// Production tokens come from the auth backend; this is for tests and
// local tooling.
func (s *TokenService) Generate(userID string) (string, error) {
	return s.GenerateWithDuration(userID, DefaultTTL)
}

// GenerateWithDuration mints a token with a custom lifetime. A negative d
// gives an already expired token.
func (s *TokenService) GenerateWithDuration(userID string, d time.Duration) (string, error) {
	now := time.Now()

	c := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(d)),
		Issuer:    s.issuer,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Validate verifies tokenStr and returns its subject.
//
// The signature, expiry (required) and issuer are checked, and only HS256
// is accepted so a token declaring "none" or an RSA algorithm is refused.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	var c jwt.RegisteredClaims

	token, err := jwt.ParseWithClaims(
		tokenStr,
		&c,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}
	if c.Subject == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}

	return c.Subject, nil
}
