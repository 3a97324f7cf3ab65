package services

import (
	"gorm.io/gorm"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/forms"
	"cashflow/internal/models"
)

// subcategoryService implements SubcategoryServicer.
type subcategoryService struct {
	db *gorm.DB
}

// NewSubcategoryService creates a new SubcategoryServicer.
func NewSubcategoryService(db *gorm.DB) SubcategoryServicer {
	return &subcategoryService{db: db}
}

func (s *subcategoryService) ListSubcategories() ([]models.Subcategory, error) {
	return listLookups[models.Subcategory](s.db)
}

func (s *subcategoryService) GetSubcategoryByID(id uint) (*models.Subcategory, error) {
	return getLookupByID[models.Subcategory](s.db, id, apperrors.ErrSubcategoryNotFound)
}

// GetSubcategoriesByCategory returns the subcategories of categoryID ordered by
// name. An unknown category yields an empty list.
func (s *subcategoryService) GetSubcategoriesByCategory(categoryID uint) ([]models.LookupItem, error) {
	items := []models.LookupItem{}
	err := s.db.Model(&models.Subcategory{}).
		Select("id", "name").
		Where("category_id = ?", categoryID).
		Order("name").
		Scan(&items).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return items, nil
}

// CreateSubcategory inserts a subcategory under categoryID. Duplicate names
// and unknown parents are reported by the storage constraints.
func (s *subcategoryService) CreateSubcategory(categoryID uint, name string) (*models.Subcategory, error) {
	name, err := forms.ValidateLookupName(name)
	if err != nil {
		return nil, err
	}
	return insertLookup(s.db, &models.Subcategory{Name: name, CategoryID: categoryID})
}

func (s *subcategoryService) DeleteSubcategory(id uint) error {
	return deleteProtected[models.Subcategory](s.db, id, "subcategory_id", apperrors.ErrSubcategoryNotFound, apperrors.ErrSubcategoryInUse)
}
