// Package postgres contains the concrete implementation of the persistence
// layer using GORM and PostgreSQL.
package postgres

import (
	"gorm.io/gorm"
)

// active is the single place the soft-delete predicate lives. Every lookup
// and guarded mutation goes through this scope so no query can forget to
// exclude logically removed rows.
func active(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}
