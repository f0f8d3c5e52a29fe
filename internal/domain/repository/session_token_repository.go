package repository

import (
	"context"

	"pulpit/internal/domain/entity"
)

// SessionTokenRepository persists bearer sessions. One active row per user:
// issuance rotates the existing row instead of inserting a second one.
// Lookups exclude soft-deleted rows and report a miss as (nil, nil).
type SessionTokenRepository interface {
	// Create inserts a row for userID with a freshly generated token value
	// and returns the hydrated record.
	Create(ctx context.Context, userID int64) (*entity.SessionToken, error)

	// Regenerate writes a new random value into the row for token.ID and
	// bumps updated_at. On success token.Token is updated in memory.
	// Reports whether exactly one row was affected.
	Regenerate(ctx context.Context, token *entity.SessionToken) (bool, error)

	// Revoke soft-deletes the row for token.ID among active rows.
	// Idempotent: a second revocation reports false.
	Revoke(ctx context.Context, token *entity.SessionToken) (bool, error)

	// FindByID returns the active row with the given id, or nil.
	FindByID(ctx context.Context, id int64) (*entity.SessionToken, error)

	// FindByUserID returns the active row owned by userID, or nil.
	FindByUserID(ctx context.Context, userID int64) (*entity.SessionToken, error)

	// FindByToken returns the active row carrying the given token value, or nil.
	FindByToken(ctx context.Context, token string) (*entity.SessionToken, error)
}
