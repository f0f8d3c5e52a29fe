package entity

import (
	"time"
)

// SessionToken represents the single active bearer session of a user.
// The token value is opaque: 32 bytes from a CSPRNG, hex-encoded to 64
// lowercase characters. A login rotates the value in place instead of
// inserting a second row, so a user holds at most one active session.
type SessionToken struct {
	ID        int64      // Numeric primary key assigned by the database.
	UserID    int64      // Owning user.
	Token     string     // 64-character lowercase hex bearer token.
	CreatedAt time.Time  // Timestamp of first issuance.
	UpdatedAt time.Time  // Timestamp of the last rotation.
	DeletedAt *time.Time // Soft-delete marker; nil while the session is live.
}

// Revoked reports whether the session has been soft-deleted.
func (t *SessionToken) Revoked() bool {
	return t.DeletedAt != nil
}
