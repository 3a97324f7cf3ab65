package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/forms"
	"cashflow/internal/models"
)

// lookupRow is implemented by the name-keyed lookup models.
type lookupRow interface {
	models.Status | models.Type | models.Category | models.Subcategory
}

func listLookups[T lookupRow](db *gorm.DB) ([]T, error) {
	rows := []T{}
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

func getLookupByID[T lookupRow](db *gorm.DB, id uint, notFound *apperrors.AppError) (*T, error) {
	var row T
	if err := db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &row, nil
}

// findByName returns the row named name, or nil when there is none.
func findByName[T lookupRow](db *gorm.DB, name string) (*T, error) {
	var row T
	err := db.Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &row, nil
}

// getOrCreate looks name up and inserts build(name) when it is missing. A
// concurrent insert of the same name is resolved by re-reading the winner.
func getOrCreate[T lookupRow](db *gorm.DB, rawName string, build func(name string) *T) (*T, bool, error) {
	name, err := forms.ValidateLookupName(rawName)
	if err != nil {
		return nil, false, err
	}

	existing, err := findByName[T](db, name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	row := build(name)
	if err := db.Create(row).Error; err != nil {
		if !isDuplicateKey(db, err) {
			return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		winner, findErr := findByName[T](db, name)
		if findErr != nil {
			return nil, false, findErr
		}
		if winner == nil {
			return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return winner, false, nil
	}
	return row, true, nil
}

// createUnique validates name, rejects it when already taken, and inserts
// build(name). The unique index still guards the window between check and insert.
func createUnique[T lookupRow](db *gorm.DB, rawName string, build func(name string) *T) (*T, error) {
	name, err := forms.ValidateLookupName(rawName)
	if err != nil {
		return nil, err
	}

	existing, err := findByName[T](db, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.WithMessage(apperrors.ErrDuplicateName, "An entry named \""+name+"\" already exists")
	}
	return insertLookup(db, build(name))
}

// insertLookup inserts row, classifying constraint violations while keeping
// the storage message as the internal error.
func insertLookup[T lookupRow](db *gorm.DB, row *T) (*T, error) {
	if err := db.Create(row).Error; err != nil {
		switch {
		case isDuplicateKey(db, err):
			return nil, apperrors.Wrap(apperrors.ErrDuplicateName, err)
		case isForeignKeyViolation(db, err):
			return nil, apperrors.Wrap(apperrors.ErrInvalidReference, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row, nil
}

// deleteProtected removes the lookup row id unless a record references it
// through column.
func deleteProtected[T lookupRow](db *gorm.DB, id uint, column string, notFound, inUse *apperrors.AppError) error {
	return db.Transaction(func(tx *gorm.DB) error {
		row, err := getLookupByID[T](tx, id, notFound)
		if err != nil {
			return err
		}

		var refs int64
		if err := tx.Model(&models.Record{}).Where(column+" = ?", id).Count(&refs).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if refs > 0 {
			return inUse
		}

		if err := tx.Delete(row).Error; err != nil {
			if isForeignKeyViolation(tx, err) {
				return apperrors.Wrap(inUse, err)
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
