// Package usecase defines the application's business operation interfaces
// and their input/output DTOs. Implementations live under usecase/impl.
package usecase

import (
	"context"

	"pulpit/internal/domain/entity"
)

// LoginInput identifies an account by email or phone. Either field may be
// empty; at least one must be provided.
type LoginInput struct {
	Email    string
	Phone    string
	Password string
}

// LoginOutput carries the authenticated account and its session token.
type LoginOutput struct {
	User  *entity.User
	Token *entity.SessionToken
}

// AuthUsecase defines credential-based session operations.
type AuthUsecase interface {
	// Login verifies the password of the account matching input and issues a
	// session token. A user that already holds an active token gets that
	// token rotated in place rather than a second row.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// Logout revokes the given session token. Revoking an already revoked
	// token is a silent no-op.
	Logout(ctx context.Context, token *entity.SessionToken) error
}
