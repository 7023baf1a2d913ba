package httpx

import "context"

type ctxKey string

const ctxKeyUserID ctxKey = "user_id"

// UserID returns the authenticated user id injected by AuthnMiddleware, or ""
// for unauthenticated requests.
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyUserID).(string); ok {
		return v
	}
	return ""
}

func withUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, id)
}
