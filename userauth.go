package userauth

import (
	"github.com/goliatone/go-router"
)

// UserAuth bundles token issuance, the request gate and password hashing
// behind one value. The gate holds the same authority used to issue tokens.
type UserAuth struct {
	authority *TokenAuthority
	gate      *Gate
	hasher    PasswordHasher
	logger    Logger
}

// New validates cfg and wires the authority, gate and hasher
func New(cfg Config, opts ...Option) (*UserAuth, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	authority, err := NewTokenAuthority([]byte(cfg.Secret), opts...)
	if err != nil {
		return nil, err
	}

	gateCfg := cfg.GateConfig()
	gateCfg.Logger = authority.logger

	gate, err := NewGate(authority, gateCfg)
	if err != nil {
		return nil, err
	}

	hasher, err := NewBcryptHasher(cfg.PasswordCost)
	if err != nil {
		return nil, err
	}

	authority.logger.Debug("UserAuth ready, token context key %q", gate.ContextKey())

	return &UserAuth{
		authority: authority,
		gate:      gate,
		hasher:    hasher,
		logger:    authority.logger,
	}, nil
}

// NewFromEnv builds a UserAuth from AUTH_* environment variables
func NewFromEnv(opts ...Option) (*UserAuth, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

// CreateToken issues a token for claims valid for ttlMinutes
func (a *UserAuth) CreateToken(claims Claims, ttlMinutes int) (string, error) {
	return a.authority.CreateToken(claims, ttlMinutes)
}

// VerifyToken verifies a token issued with the same secret
func (a *UserAuth) VerifyToken(token string) (*VerificationResult, error) {
	return a.authority.VerifyToken(token)
}

// Auth returns the gate as middleware for protected routes
func (a *UserAuth) Auth() router.MiddlewareFunc {
	return a.gate.Middleware()
}

// HashPassword hashes password with the configured cost
func (a *UserAuth) HashPassword(password string) (string, error) {
	return a.hasher.HashPassword(password)
}

// ComparePassword reports whether password matches hashedPassword
func (a *UserAuth) ComparePassword(password, hashedPassword string) (bool, error) {
	return a.hasher.ComparePassword(password, hashedPassword)
}

// Authority returns the token authority
func (a *UserAuth) Authority() *TokenAuthority {
	return a.authority
}

// Gate returns the credential gate
func (a *UserAuth) Gate() *Gate {
	return a.gate
}
