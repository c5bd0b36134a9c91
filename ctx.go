package userauth

import (
	"context"

	"github.com/goliatone/go-router"
)

const verificationLocalsKey = "auth.verification"

var userIDCtxKey = &contextKey{"userId"}

type contextKey struct {
	name string
}

// WithUserID sets the user id in the given context
func WithUserID(ctx context.Context, userID any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userIDCtxKey, userID)
}

// UserIDFromContext finds the user id set by the gate
func UserIDFromContext(ctx context.Context) (any, bool) {
	if ctx == nil {
		return nil, false
	}
	raw := ctx.Value(userIDCtxKey)
	return raw, raw != nil
}

// UserIDFromCtx reads the user id from router locals. An empty key uses the
// default "userId".
func UserIDFromCtx(ctx router.Context, key string) (any, bool) {
	if key == "" {
		key = "userId"
	}
	raw := ctx.Locals(key)
	return raw, raw != nil
}

// VerificationFromCtx returns the full verification result stored by the gate
func VerificationFromCtx(ctx router.Context) (*VerificationResult, bool) {
	result, ok := ctx.Locals(verificationLocalsKey).(*VerificationResult)
	return result, ok && result != nil
}
