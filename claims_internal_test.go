package userauth

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUserID(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected any
		ok       bool
	}{
		{name: "string", value: "u1", expected: "u1", ok: true},
		{name: "empty string", value: "", ok: false},
		{name: "int", value: 3, expected: int64(3), ok: true},
		{name: "negative int8", value: int8(-3), expected: int64(-3), ok: true},
		{name: "uint64 in range", value: uint64(12), expected: int64(12), ok: true},
		{name: "uint64 overflow", value: uint64(math.MaxUint64), ok: false},
		{name: "integral float64", value: float64(12), expected: int64(12), ok: true},
		{name: "fractional float64", value: 12.5, ok: false},
		{name: "float32", value: float32(8), expected: int64(8), ok: true},
		{name: "NaN", value: math.NaN(), ok: false},
		{name: "Inf", value: math.Inf(1), ok: false},
		{name: "float beyond exact range", value: float64(1 << 60), ok: false},
		{name: "json number", value: json.Number("77"), expected: int64(77), ok: true},
		{name: "json number fraction", value: json.Number("7.5"), ok: false},
		{name: "json number past exact float range", value: json.Number("9007199254740993"), expected: int64(1<<53 + 1), ok: true},
		{name: "json number exponent", value: json.Number("1e3"), expected: int64(1000), ok: true},
		{name: "json number overflow", value: json.Number("99999999999999999999"), ok: false},
		{name: "nil", value: nil, ok: false},
		{name: "map", value: map[string]any{}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizeUserID(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestDecodeNumbers(t *testing.T) {
	got := decodeNumbers(map[string]any{
		"int":    json.Number("12"),
		"float":  json.Number("0.25"),
		"nested": map[string]any{"n": json.Number("9007199254740993")},
		"list":   []any{json.Number("1"), "x"},
		"text":   "7",
	})

	assert.Equal(t, map[string]any{
		"int":    int64(12),
		"float":  0.25,
		"nested": map[string]any{"n": int64(1<<53 + 1)},
		"list":   []any{int64(1), "x"},
		"text":   "7",
	}, got)
}

func TestValidateClaims(t *testing.T) {
	assert.NoError(t, validateClaims(Claims{"userId": "u1"}))
	assert.NoError(t, validateClaims(Claims{"userId": 1, "data": Claims{"role": "x"}}))
	assert.NoError(t, validateClaims(Claims{"userId": 1, "data": nil}))

	err := validateClaims(Claims{"data": 3})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), ClaimUserID)
		assert.Contains(t, err.Error(), ClaimData)
	}
}

func TestGateConfigDefaults(t *testing.T) {
	cfg := GateConfig{}.withDefaults()

	assert.Equal(t, "authToken", cfg.BodyField)
	assert.Equal(t, "authToken", cfg.QueryParam)
	assert.Equal(t, "authToken", cfg.RouteParam)
	assert.Equal(t, "authtoken", cfg.Header)
	assert.Equal(t, "Authorization", cfg.AuthHeader)
	assert.Equal(t, []string{"Bearer", "Bcrypt"}, cfg.AuthSchemes)
	assert.Equal(t, "authToken", cfg.Cookie)
	assert.Equal(t, "userId", cfg.ContextKey)
	assert.NotNil(t, cfg.Logger)
	assert.Len(t, DefaultExtractors(cfg), 6)
}
