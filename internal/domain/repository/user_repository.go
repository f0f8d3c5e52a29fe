// Package repository defines the persistence interfaces of the domain.
// Implementations live under internal/infra/persistence.
package repository

import (
	"context"

	"pulpit/internal/domain/entity"
)

// CreateUserArgs carries the fields needed to insert a new account.
// Password is plaintext here; the repository hashes it before the insert.
type CreateUserArgs struct {
	FullName   string
	Email      string
	Phone      *string
	Password   string
	ColorTheme string
	Lang       string
}

// UpdateUserArgs carries the mutable profile fields. Nil pointers leave the
// stored value untouched; a non-nil Password triggers a re-hash.
type UpdateUserArgs struct {
	FullName   *string
	Email      *string
	Phone      *string
	Password   *string
	ColorTheme *string
	Lang       *string
}

// UserRepository persists accounts. Lookups exclude soft-deleted rows and
// report a miss as (nil, nil); errors are reserved for datastore faults.
type UserRepository interface {
	// Create hashes args.Password and inserts a new row. Duplicate checking
	// is the caller's responsibility, not the repository's.
	Create(ctx context.Context, args CreateUserArgs) (*entity.User, error)

	// Update mutates the row for user.ID among active rows, bumping
	// updated_at. Reports whether a row was affected.
	Update(ctx context.Context, user *entity.User, args UpdateUserArgs) (bool, error)

	// Delete soft-deletes the row for user.ID. Idempotent: deleting an
	// already-deleted row reports false.
	Delete(ctx context.Context, user *entity.User) (bool, error)

	// FindByID returns the active row with the given id, or nil.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByEmailOrPhone returns the first active row whose email equals
	// email or whose phone equals phone, or nil.
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*entity.User, error)
}
