package services

import (
	"gorm.io/gorm"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/forms"
	"cashflow/internal/models"
)

// categoryService implements CategoryServicer.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

func (s *categoryService) ListCategories() ([]models.Category, error) {
	return listLookups[models.Category](s.db)
}

func (s *categoryService) GetCategoryByID(id uint) (*models.Category, error) {
	return getLookupByID[models.Category](s.db, id, apperrors.ErrCategoryNotFound)
}

// GetCategoriesByType returns each category referenced by at least one record
// of typeID, ordered by name.
func (s *categoryService) GetCategoriesByType(typeID uint) ([]models.LookupItem, error) {
	items := []models.LookupItem{}
	err := s.db.Model(&models.Category{}).
		Distinct("categories.id", "categories.name").
		Joins("JOIN records ON records.category_id = categories.id").
		Where("records.type_id = ?", typeID).
		Order("categories.name").
		Scan(&items).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return items, nil
}

// CreateCategory inserts a category without checking for an existing name
// first; the unique index reports duplicates.
func (s *categoryService) CreateCategory(name string) (*models.Category, error) {
	name, err := forms.ValidateLookupName(name)
	if err != nil {
		return nil, err
	}
	return insertLookup(s.db, &models.Category{Name: name})
}

func (s *categoryService) DeleteCategory(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		category, err := getLookupByID[models.Category](tx, id, apperrors.ErrCategoryNotFound)
		if err != nil {
			return err
		}

		var refs int64
		err = tx.Model(&models.Record{}).
			Where("category_id = ? OR subcategory_id IN (?)", id,
				tx.Model(&models.Subcategory{}).Select("id").Where("category_id = ?", id)).
			Count(&refs).Error
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if refs > 0 {
			return apperrors.ErrCategoryInUse
		}

		// Subcategories are removed explicitly so the cascade does not depend
		// on the backend enforcing ON DELETE CASCADE.
		if err := tx.Where("category_id = ?", id).Delete(&models.Subcategory{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(category).Error; err != nil {
			if isForeignKeyViolation(tx, err) {
				return apperrors.Wrap(apperrors.ErrCategoryInUse, err)
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
