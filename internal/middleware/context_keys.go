package middleware

import "context"

const (
	subjectIDKey = contextKey("subjectID")
	roleKey      = contextKey("role")
)

// GetSubjectIDFromCtx retrieves the authenticated subject ID from the
// context. The boolean reports whether the auth middleware set one.
func GetSubjectIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(subjectIDKey).(string)
	return id, ok
}

// GetRoleFromCtx retrieves the authenticated role from the context.
func GetRoleFromCtx(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}
