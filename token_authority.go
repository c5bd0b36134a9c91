package userauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/golang-jwt/jwt/v5"
)

// maxExactFloat is the largest integral float64 that converts to int64
// without losing precision.
const maxExactFloat = 1 << 53

// TokenAuthority owns the signing secret and creates and verifies tokens.
// It is immutable after construction and safe for concurrent use.
type TokenAuthority struct {
	secret []byte
	method jwt.SigningMethod
	leeway time.Duration
	now    func() time.Time
	logger Logger
}

var (
	_ TokenIssuer   = (*TokenAuthority)(nil)
	_ TokenVerifier = (*TokenAuthority)(nil)
)

// Option configures a TokenAuthority
type Option func(*TokenAuthority)

// WithLogger sets the logger, nil keeps the default one
func WithLogger(logger Logger) Option {
	return func(ta *TokenAuthority) {
		if logger != nil {
			ta.logger = logger
		}
	}
}

// WithClock overrides the time source used to stamp and check tokens
func WithClock(now func() time.Time) Option {
	return func(ta *TokenAuthority) {
		if now != nil {
			ta.now = now
		}
	}
}

// WithLeeway tolerates clock skew when checking exp and iat
func WithLeeway(leeway time.Duration) Option {
	return func(ta *TokenAuthority) {
		ta.leeway = leeway
	}
}

// NewTokenAuthority creates an authority holding secret. The secret is copied
// so later changes to the caller's slice have no effect.
func NewTokenAuthority(secret []byte, opts ...Option) (*TokenAuthority, error) {
	if strings.TrimSpace(string(secret)) == "" {
		return nil, fmt.Errorf("%w: signing secret is required", ErrConfiguration)
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	ta := &TokenAuthority{
		secret: key,
		method: jwt.SigningMethodHS256,
		now:    time.Now,
		logger: defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(ta)
		}
	}

	if ta.leeway < 0 {
		return nil, fmt.Errorf("%w: leeway must be non-negative", ErrConfiguration)
	}

	return ta, nil
}

// CreateToken signs claims together with iat and exp, exp being ttlMinutes
// after the current time. The same claims signed at the same second yield
// the same token.
func (ta *TokenAuthority) CreateToken(claims Claims, ttlMinutes int) (string, error) {
	if err := validateClaims(claims); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSigning, err)
	}

	if ttlMinutes <= 0 {
		return "", fmt.Errorf("%w: ttl must be a positive number of minutes, got %d", ErrSigning, ttlMinutes)
	}

	now := ta.now()
	payload := make(jwt.MapClaims, len(claims)+2)
	for k, v := range claims {
		payload[k] = v
	}
	payload[claimIssuedAt] = now.Unix()
	payload[claimExpiresAt] = now.Add(time.Duration(ttlMinutes) * time.Minute).Unix()

	token := jwt.NewWithClaims(ta.method, payload)

	signed, err := token.SignedString(ta.secret)
	if err != nil {
		ta.logger.Error("TokenAuthority failed to sign token: %s", err)
		return "", fmt.Errorf("%w: %w", ErrSigning, err)
	}

	return signed, nil
}

// VerifyToken checks the signature and expiry of tokenString. It either
// returns a result with Verified set or an error wrapping ErrInvalidToken.
func (ta *TokenAuthority) VerifyToken(tokenString string) (*VerificationResult, error) {
	parserOptions := []jwt.ParserOption{
		jwt.WithValidMethods([]string{ta.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(ta.now),
		jwt.WithJSONNumber(),
	}
	if ta.leeway > 0 {
		parserOptions = append(parserOptions, jwt.WithLeeway(ta.leeway))
	}

	token, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ta.secret, nil
	}, parserOptions...)

	if err != nil {
		ta.logger.Debug("TokenAuthority rejected token: %s", err)
		return nil, classifyParseError(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		ta.logger.Error("TokenAuthority could not decode or validate claims")
		return nil, ErrTokenMalformed
	}

	return resultFromClaims(claims)
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrSignatureInvalid, err)
	default:
		return fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}
}

func resultFromClaims(claims jwt.MapClaims) (*VerificationResult, error) {
	userID, ok := normalizeUserID(claims[ClaimUserID])
	if !ok {
		return nil, fmt.Errorf("%w: missing or invalid %s claim", ErrTokenMalformed, ClaimUserID)
	}

	data := TokenData{UserID: userID}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		data.ExpiresAt = exp.Unix()
	}

	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		data.IssuedAt = iat.Unix()
	}

	decoded := make(Claims, len(claims))
	for k, v := range claims {
		decoded[k] = decodeNumbers(v)
	}
	decoded[ClaimUserID] = userID
	data.Claims = decoded

	if payload, ok := decoded[ClaimData].(map[string]any); ok {
		data.Data = payload
	}

	return &VerificationResult{
		Verified: true,
		Data:     data,
	}, nil
}

// decodeNumbers replaces json.Number values with int64 when integral and
// float64 otherwise, descending into maps and slices.
func decodeNumbers(value any) any {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = decodeNumbers(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = decodeNumbers(item)
		}
		return out
	}
	return value
}

func validateClaims(claims Claims) error {
	if claims == nil {
		return errors.New("claims must not be nil")
	}

	for _, key := range []string{claimIssuedAt, claimExpiresAt} {
		if _, ok := claims[key]; ok {
			return fmt.Errorf("claim %q is reserved", key)
		}
	}

	return validation.Errors{
		ClaimUserID: validation.Validate(claims[ClaimUserID], validation.NotNil, validation.By(isUserID)),
		ClaimData:   validation.Validate(claims[ClaimData], validation.By(isClaimData)),
	}.Filter()
}

func isUserID(value any) error {
	if _, ok := normalizeUserID(value); !ok {
		return errors.New("must be a non-empty string or an integer")
	}
	return nil
}

func isClaimData(value any) error {
	switch value.(type) {
	case nil, map[string]any, Claims:
		return nil
	}
	return errors.New("must be a mapping")
}

// normalizeUserID accepts a non-empty string or any integral number and
// returns integers as int64. Verified tokens are decoded with json.Number so
// ids beyond the exact float64 range keep every digit. Floats are accepted
// only while they are integral and exactly representable.
func normalizeUserID(value any) (any, bool) {
	switch v := value.(type) {
	case string:
		return v, strings.TrimSpace(v) != ""
	case int, int8, int16, int32, int64:
		return reflect.ValueOf(v).Int(), true
	case uint, uint8, uint16, uint32, uint64:
		u := reflect.ValueOf(v).Uint()
		if u > math.MaxInt64 {
			return nil, false
		}
		return int64(u), true
	case float32:
		return normalizeFloat(float64(v))
	case float64:
		return normalizeFloat(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
		f, err := v.Float64()
		if err != nil {
			return nil, false
		}
		return normalizeFloat(f)
	}
	return nil, false
}

func normalizeFloat(f float64) (any, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > maxExactFloat {
		return nil, false
	}
	return int64(f), true
}
