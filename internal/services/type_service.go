package services

import (
	"gorm.io/gorm"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
)

// typeService implements TypeServicer.
type typeService struct {
	db *gorm.DB
}

// NewTypeService creates a new TypeServicer.
func NewTypeService(db *gorm.DB) TypeServicer {
	return &typeService{db: db}
}

func (s *typeService) ListTypes() ([]models.Type, error) {
	return listLookups[models.Type](s.db)
}

func (s *typeService) GetTypeByID(id uint) (*models.Type, error) {
	return getLookupByID[models.Type](s.db, id, apperrors.ErrTypeNotFound)
}

func (s *typeService) GetOrCreateType(name string) (*models.Type, bool, error) {
	return getOrCreate(s.db, name, func(n string) *models.Type {
		return &models.Type{Name: n}
	})
}

func (s *typeService) CreateType(name string) (*models.Type, error) {
	return createUnique(s.db, name, func(n string) *models.Type {
		return &models.Type{Name: n}
	})
}

func (s *typeService) DeleteType(id uint) error {
	return deleteProtected[models.Type](s.db, id, "type_id", apperrors.ErrTypeNotFound, apperrors.ErrTypeInUse)
}
