// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// User is the core entity of the system, representing one account.
// PasswordHash is the Argon2id-encoded secret; it must never leave the
// process through a delivery layer (handlers map to a sanitized DTO
// before responding).
type User struct {
	ID           int64      // Numeric primary key assigned by the database.
	FullName     string     // Display name.
	Email        string     // Login identifier, unique among active rows.
	Phone        *string    // Optional second login identifier, unique among active rows when set.
	PasswordHash string     // Argon2id PHC-encoded password hash.
	ColorTheme   string     // UI preference: color theme.
	Lang         string     // UI preference: interface language.
	CreatedAt    time.Time  // Timestamp of account creation.
	UpdatedAt    time.Time  // Timestamp of the last modification.
	DeletedAt    *time.Time // Soft-delete marker; nil while the account is active.
}

// Deleted reports whether the account has been soft-deleted.
func (u *User) Deleted() bool {
	return u.DeletedAt != nil
}
