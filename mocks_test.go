package userauth_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	userauth "github.com/kodelab/go-userauth"
)

// MockVerifier implements userauth.TokenVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) VerifyToken(token string) (*userauth.VerificationResult, error) {
	args := m.Called(token)
	result, _ := args.Get(0).(*userauth.VerificationResult)
	return result, args.Error(1)
}

// MockLogger implements userauth.Logger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// recordingLogger keeps every formatted line
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) record(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Debug(format string, args ...any) { l.record("DBG", format, args...) }
func (l *recordingLogger) Info(format string, args ...any)  { l.record("INF", format, args...) }
func (l *recordingLogger) Error(format string, args ...any) { l.record("ERR", format, args...) }

func (l *recordingLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// fakeClock is a settable time source
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// routerContext overrides router.MockContext so request data lives in plain
// fields: body, headers (served by GetString), locals, the std context and
// the last JSON response. Query, params and cookies use the mock maps.
type routerContext struct {
	*router.MockContext
	body    []byte
	headers map[string]string
	locals  map[any]any
	std     context.Context
	code    int
	payload any
}

func newRouterContext() *routerContext {
	return &routerContext{
		MockContext: router.NewMockContext(),
		headers:     map[string]string{},
		locals:      map[any]any{},
		std:         context.Background(),
	}
}

func (c *routerContext) withQuery(key, value string) *routerContext {
	c.QueriesM[key] = value
	return c
}

func (c *routerContext) withParam(key, value string) *routerContext {
	c.ParamsM[key] = value
	return c
}

func (c *routerContext) withCookie(key, value string) *routerContext {
	c.CookiesM[key] = value
	return c
}

func (c *routerContext) withHeader(key, value string) *routerContext {
	c.headers[key] = value
	return c
}

func (c *routerContext) withBody(contentType, body string) *routerContext {
	c.headers["Content-Type"] = contentType
	c.body = []byte(body)
	return c
}

func (c *routerContext) Body() []byte {
	return c.body
}

// GetString serves request headers, names match case insensitively
func (c *routerContext) GetString(key string, defaultValue string) string {
	for name, value := range c.headers {
		if strings.EqualFold(name, key) {
			return value
		}
	}
	return defaultValue
}

func (c *routerContext) Locals(key any, value ...any) any {
	if len(value) > 0 {
		c.locals[key] = value[0]
		return value[0]
	}
	return c.locals[key]
}

func (c *routerContext) Context() context.Context {
	return c.std
}

func (c *routerContext) SetContext(ctx context.Context) {
	c.std = ctx
}

func (c *routerContext) JSON(code int, val any) error {
	c.code = code
	c.payload = val
	return nil
}

func (c *routerContext) responseBody(t *testing.T) string {
	t.Helper()
	raw, err := json.Marshal(c.payload)
	require.NoError(t, err)
	return string(raw)
}
