// Package ctxutil carries request-scoped values between middleware, handlers
// and services.
package ctxutil

import "context"

type (
	userKeyCtx   struct{}
	requestIDCtx struct{}
)

// WithUserKey marks ctx as acting for the signed-in user.
func WithUserKey(ctx context.Context, key int64) context.Context {
	return context.WithValue(ctx, userKeyCtx{}, key)
}

// UserKeyFromCtx reports the signed-in user. Keys below 1 count as absent.
func UserKeyFromCtx(ctx context.Context) (int64, bool) {
	if key, _ := ctx.Value(userKeyCtx{}).(int64); key > 0 {
		return key, true
	}
	return 0, false
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDCtx{}, id)
}

// RequestIDFromCtx is empty outside a request.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDCtx{}).(string)
	return id
}
