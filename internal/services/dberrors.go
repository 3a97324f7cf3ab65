package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// translate maps a driver error to gorm's portable errors through the
// active dialector, returning err unchanged when nothing matches.
func translate(db *gorm.DB, err error) error {
	if t, ok := db.Dialector.(gorm.ErrorTranslator); ok {
		if translated := t.Translate(err); translated != nil {
			return translated
		}
	}
	return err
}

func isDuplicateKey(db *gorm.DB, err error) bool {
	if errors.Is(translate(db, err), gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

func isForeignKeyViolation(db *gorm.DB, err error) bool {
	if errors.Is(translate(db, err), gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "violates foreign key constraint")
}
