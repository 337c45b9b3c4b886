package jwtutil

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenClaims carries the fields this service reads from a backend-issued
// bearer token. Signature verification is the backend's responsibility; this
// layer only pre-checks expiry to tear sessions down proactively.
type TokenClaims struct {
	Username string   `json:"username,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser()

// IsWellFormed reports whether the token has the basic header.payload.signature shape
func IsWellFormed(tokenString string) bool {
	return len(strings.Split(tokenString, ".")) == 3
}

// ExtractClaims parses the token without verifying its signature and returns the claims
func ExtractClaims(tokenString string) (*TokenClaims, error) {
	if !IsWellFormed(tokenString) {
		return nil, errors.New("malformed token")
	}

	claims := &TokenClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// IsExpired reports whether the token carries an expiry in the past.
// Tokens without an exp claim, and opaque tokens that are not JWTs at all,
// are treated as unexpired: no pre-check is possible and the backend has
// the final word on every request anyway.
func IsExpired(tokenString string) bool {
	claims, err := ExtractClaims(tokenString)
	if err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
