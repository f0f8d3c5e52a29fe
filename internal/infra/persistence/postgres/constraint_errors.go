package postgres

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// isUniqueConstraintViolation reports whether err is a duplicate key error.
// Requires TranslateError on the GORM config so driver errors surface as
// gorm.ErrDuplicatedKey.
func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
