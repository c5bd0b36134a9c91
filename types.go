package userauth

import (
	"fmt"
	"time"
)

// Logger is the printf style logger used across the package.
// Implementations must never receive the signing secret or raw tokens.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Claims is the opaque identity payload embedded in a token.
// It must carry a "userId" (string or integer) and may carry a
// "data" mapping; every other key is passed through untouched.
type Claims map[string]any

const (
	// ClaimUserID is the required identity key
	ClaimUserID = "userId"
	// ClaimData is the optional application payload key
	ClaimData = "data"
)

const (
	claimIssuedAt  = "iat"
	claimExpiresAt = "exp"
)

// UserID returns the raw user id claim
func (c Claims) UserID() any {
	return c[ClaimUserID]
}

// Data returns the application payload, nil when absent
func (c Claims) Data() map[string]any {
	data, _ := c[ClaimData].(map[string]any)
	return data
}

// VerificationResult is returned by a successful verification.
// Verified is always true: failures are reported as errors.
type VerificationResult struct {
	Verified bool      `json:"verified"`
	Data     TokenData `json:"data"`
}

// TokenData holds the decoded claims of a verified token
type TokenData struct {
	UserID    any            `json:"userId"`
	Data      map[string]any `json:"data,omitempty"`
	IssuedAt  int64          `json:"iat"`
	ExpiresAt int64          `json:"exp"`
	// Claims is the full decoded payload, including pass-through keys
	Claims Claims `json:"-"`
}

// Expires returns the expiration time
func (d TokenData) Expires() time.Time {
	return time.Unix(d.ExpiresAt, 0)
}

// Issued returns the issued at time
func (d TokenData) Issued() time.Time {
	return time.Unix(d.IssuedAt, 0)
}

// TokenVerifier is what the gate needs from a token authority
type TokenVerifier interface {
	VerifyToken(token string) (*VerificationResult, error)
}

// TokenIssuer creates tokens for a claim
type TokenIssuer interface {
	CreateToken(claims Claims, ttlMinutes int) (string, error)
}

// PasswordHasher hashes and compares passwords
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) (bool, error)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
