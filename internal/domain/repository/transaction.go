package repository

import (
	"context"
)

// RepositoryFactory hands out repository instances bound to one transaction.
type RepositoryFactory interface {
	UserRepo() UserRepository
	SessionTokenRepo() SessionTokenRepository
}

// TransactionManager runs a function inside a single database transaction.
// The check-then-rotate-or-create step of login and the duplicate check of
// registration run through here so the one-active-token and unique-account
// invariants hold under concurrent requests.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repoFactory RepositoryFactory) error) error
}
