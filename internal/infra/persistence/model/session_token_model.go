package model

import (
	"time"
)

// SessionTokenModel mirrors the 'oauth_tokens' table. The partial unique
// index on user_id is what makes "at most one active token per user" a
// database guarantee rather than an application-side convention.
type SessionTokenModel struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	UserID    int64      `gorm:"column:user_id;not null;uniqueIndex:idx_oauth_tokens_active_user,where:deleted_at IS NULL"`
	Token     string     `gorm:"type:char(64);not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (SessionTokenModel) TableName() string {
	return "oauth_tokens"
}
