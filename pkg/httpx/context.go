package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyRoles  ctxKey = "roles"
	CtxKeyEmail  ctxKey = "email"
)

// ContextWithPrincipal injects the authenticated identity into the request
// context for downstream handlers.
func ContextWithPrincipal(ctx context.Context, userID, email string, roles []string) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, userID)
	ctx = context.WithValue(ctx, CtxKeyEmail, email)
	ctx = context.WithValue(ctx, CtxKeyRoles, roles)
	return ctx
}

// UserIDFromCtx returns the authenticated user id, or "" if unauthenticated.
func UserIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// EmailFromCtx returns the authenticated email, or "" if unauthenticated.
func EmailFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyEmail).(string); ok {
		return v
	}
	return ""
}

func rolesFromCtx(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyRoles).([]string); ok {
		return v
	}
	return nil
}

// RolesFromCtx returns the role snapshot carried by the validated token.
func RolesFromCtx(ctx context.Context) []string {
	return rolesFromCtx(ctx)
}
