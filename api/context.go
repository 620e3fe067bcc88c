package api

import (
	"context"
)

type keyType string

const adminUsernameKey keyType = "adminUsername"

// ctxWithAdminUsername adds the authenticated admin's username to the context
func ctxWithAdminUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, adminUsernameKey, username)
}

// ctxAdminUsername retrieves the authenticated admin's username, if any
func ctxAdminUsername(ctx context.Context) string {
	if value, ok := ctx.Value(adminUsernameKey).(string); ok {
		return value
	}
	return ""
}
