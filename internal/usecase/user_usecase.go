package usecase

import (
	"context"

	"pulpit/internal/domain/entity"
	"pulpit/internal/domain/repository"
)

// CreateUserInput carries the registration fields.
type CreateUserInput struct {
	FullName   string
	Email      string
	Phone      *string
	Password   string
	ColorTheme string
	Lang       string
}

// CreateUserOutput carries the new account and the session token issued for
// it, so registration doubles as a first login.
type CreateUserOutput struct {
	User  *entity.User
	Token *entity.SessionToken
}

// UserUsecase defines account management operations.
type UserUsecase interface {
	// CreateUser registers a new account and issues its first session token.
	// An active account with the same email or phone aborts the whole unit.
	CreateUser(ctx context.Context, input CreateUserInput) (*CreateUserOutput, error)

	// FindUserByID returns the active account with the given id.
	FindUserByID(ctx context.Context, id int64) (*entity.User, error)

	// FindUserByEmailOrPhone returns the first active account matching either
	// identifier.
	FindUserByEmailOrPhone(ctx context.Context, email, phone string) (*entity.User, error)

	// UpdateUser mutates the account's profile fields.
	UpdateUser(ctx context.Context, user *entity.User, args repository.UpdateUserArgs) error

	// DeleteUser soft-deletes the account and revokes any active session it
	// holds, in one transaction.
	DeleteUser(ctx context.Context, user *entity.User) error
}
