package utils

import "context"

type contextKey string

const identityKey contextKey = "identity"

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Identity is the authenticated caller decoded from the session token.
type Identity struct {
	ID       string
	Username string
	Role     string
	FullName string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// SetUserContext sets user info into context (called by middleware)
func SetUserContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentityFromContext retrieves the caller identity safely
func GetIdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// GetUserIDFromContext retrieves userID safely
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := GetIdentityFromContext(ctx)
	if !ok || id.ID == "" {
		return "", false
	}
	return id.ID, true
}

func GetUserRoleFromContext(ctx context.Context) string {
	id, _ := GetIdentityFromContext(ctx)
	return id.Role
}
