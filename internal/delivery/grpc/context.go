// Package grpc wires the gRPC server and its auth gate.
package grpc

import (
	"context"

	"pulpit/internal/domain/entity"
)

type ctxKey string

const (
	userKey  ctxKey = "authUser"
	tokenKey ctxKey = "authToken"
)

// withPrincipal stores the authenticated user and session on the call
// context for downstream handlers.
func withPrincipal(ctx context.Context, user *entity.User, token *entity.SessionToken) context.Context {
	ctx = context.WithValue(ctx, userKey, user)

	return context.WithValue(ctx, tokenKey, token)
}

// UserFromContext returns the authenticated user placed by the auth
// interceptor, or nil on a public method.
func UserFromContext(ctx context.Context) *entity.User {
	user, _ := ctx.Value(userKey).(*entity.User)

	return user
}

// TokenFromContext returns the session token placed by the auth
// interceptor, or nil.
func TokenFromContext(ctx context.Context) *entity.SessionToken {
	token, _ := ctx.Value(tokenKey).(*entity.SessionToken)

	return token
}
