package auth

import "context"

type contextKey string

const ownerIDContextKey contextKey = "ownerID"

// ContextWithOwnerID attaches the signed-in owner id to the request context.
func ContextWithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerIDContextKey, ownerID)
}

// OwnerIDFromContext returns the signed-in owner id, if any.
func OwnerIDFromContext(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(ownerIDContextKey).(string)
	return ownerID, ok && ownerID != ""
}
