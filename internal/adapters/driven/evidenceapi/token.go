package evidenceapi

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo describes a bearer token without verifying its signature.
// The backend remains the authority; this only avoids sending tokens that
// are known to be expired.
type TokenInfo struct {
	// IsJWT is false for opaque tokens, which carry no readable claims.
	IsJWT     bool
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token has an expiry that has passed.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}

// InspectToken reads the claims of a JWT bearer token.
// Opaque tokens return a zero TokenInfo and no error.
func InspectToken(token string) TokenInfo {
	token = strings.TrimSpace(token)
	if strings.Count(token, ".") != 2 {
		return TokenInfo{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}
	}

	info := TokenInfo{IsJWT: true}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info
}
