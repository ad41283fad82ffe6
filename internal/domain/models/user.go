package models

import "context"

// UserProfile is the operator identity kept in the session.
// Destroyed on logout.
type UserProfile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type userCtxKey struct{}

// WithUser injects the profile into the context
func WithUser(ctx context.Context, u *UserProfile) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext returns the profile stored by WithUser, or nil
func UserFromContext(ctx context.Context) *UserProfile {
	u, _ := ctx.Value(userCtxKey{}).(*UserProfile)
	return u
}
