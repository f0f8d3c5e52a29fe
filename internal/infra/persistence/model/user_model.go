// Package model holds the GORM persistence models mirroring the database
// schema. Soft deletion is a plain nullable timestamp checked through the
// repositories' active-row scope, not gorm.DeletedAt magic.
package model

import (
	"time"
)

// UserModel mirrors the 'users' table. Uniqueness of email and phone is
// enforced only among active rows via partial unique indexes.
type UserModel struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	FullName     string     `gorm:"column:full_name;type:varchar(255);not null"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_active_email,where:deleted_at IS NULL"`
	Phone        *string    `gorm:"type:varchar(32);uniqueIndex:idx_users_active_phone,where:deleted_at IS NULL"`
	PasswordHash string     `gorm:"column:password_hash;type:varchar(255);not null"`
	ColorTheme   string     `gorm:"column:color_theme;type:varchar(50)"`
	Lang         string     `gorm:"type:varchar(10)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
