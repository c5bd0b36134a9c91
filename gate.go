package userauth

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-router"
)

// MessageUnauthorised is the message sent when a request carries no token
const MessageUnauthorised = "Unauthorised"

// GateConfig holds the request locations the gate reads. Empty fields take
// the defaults below.
type GateConfig struct {
	BodyField   string
	QueryParam  string
	RouteParam  string
	Header      string
	AuthHeader  string
	AuthSchemes []string
	Cookie      string
	// ContextKey is the router locals key holding the user id
	ContextKey string
	// ErrorHandler receives verification errors. When nil the error is
	// returned as is so the router error handler deals with it.
	ErrorHandler router.ErrorHandler
	Logger       Logger
}

func (cfg GateConfig) withDefaults() GateConfig {
	if cfg.BodyField == "" {
		cfg.BodyField = "authToken"
	}
	if cfg.QueryParam == "" {
		cfg.QueryParam = "authToken"
	}
	if cfg.RouteParam == "" {
		cfg.RouteParam = "authToken"
	}
	if cfg.Header == "" {
		cfg.Header = "authtoken"
	}
	if cfg.AuthHeader == "" {
		cfg.AuthHeader = router.HeaderAuthorization
	}
	if len(cfg.AuthSchemes) == 0 {
		cfg.AuthSchemes = []string{"Bearer", "Bcrypt"}
	}
	if cfg.Cookie == "" {
		cfg.Cookie = "authToken"
	}
	if cfg.ContextKey == "" {
		cfg.ContextKey = "userId"
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx router.Context, err error) error {
			return err
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = defLogger{}
	}
	return cfg
}

// Gate admits requests that carry a valid token and rejects the rest
type Gate struct {
	verifier     TokenVerifier
	extractors   []TokenExtractor
	contextKey   string
	errorHandler router.ErrorHandler
	logger       Logger
}

// NewGate builds a gate that delegates verification to verifier
func NewGate(verifier TokenVerifier, cfg GateConfig) (*Gate, error) {
	if verifier == nil {
		return nil, fmt.Errorf("%w: token verifier is required", ErrConfiguration)
	}

	for _, scheme := range cfg.AuthSchemes {
		if strings.TrimSpace(scheme) == "" {
			return nil, fmt.Errorf("%w: empty auth scheme", ErrConfiguration)
		}
	}

	cfg = cfg.withDefaults()

	return &Gate{
		verifier:     verifier,
		extractors:   DefaultExtractors(cfg),
		contextKey:   cfg.ContextKey,
		errorHandler: cfg.ErrorHandler,
		logger:       cfg.Logger,
	}, nil
}

// ContextKey returns the locals key the user id is stored under
func (g *Gate) ContextKey() string {
	return g.contextKey
}

// Intercept guards a single request. A request without a token gets a 401
// response and never reaches the verifier. A token that fails
// verification goes to the configured error handler unchanged.
func (g *Gate) Intercept(ctx router.Context) error {
	return g.admit(ctx, ctx.Next)
}

// Handler returns Intercept as a router.HandlerFunc
func (g *Gate) Handler() router.HandlerFunc {
	return g.Intercept
}

// Middleware returns the gate as route middleware wrapping next
func (g *Gate) Middleware() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			return g.admit(ctx, func() error { return next(ctx) })
		}
	}
}

func (g *Gate) admit(ctx router.Context, next func() error) error {
	token, err := ExtractToken(ctx, g.extractors)
	if err != nil {
		g.logger.Debug("Gate rejected request: no token")
		return Unauthorised(ctx)
	}

	result, err := g.verifier.VerifyToken(token)
	if err != nil {
		return g.errorHandler(ctx, err)
	}
	if result == nil {
		return g.errorHandler(ctx, ErrTokenMalformed)
	}

	ctx.Locals(g.contextKey, result.Data.UserID)
	ctx.Locals(verificationLocalsKey, result)
	ctx.SetContext(WithUserID(ctx.Context(), result.Data.UserID))

	return next()
}
