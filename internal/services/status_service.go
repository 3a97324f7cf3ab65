package services

import (
	"gorm.io/gorm"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
)

// statusService implements StatusServicer.
type statusService struct {
	db *gorm.DB
}

// NewStatusService creates a new StatusServicer.
func NewStatusService(db *gorm.DB) StatusServicer {
	return &statusService{db: db}
}

func (s *statusService) ListStatuses() ([]models.Status, error) {
	return listLookups[models.Status](s.db)
}

func (s *statusService) GetStatusByID(id uint) (*models.Status, error) {
	return getLookupByID[models.Status](s.db, id, apperrors.ErrStatusNotFound)
}

func (s *statusService) GetOrCreateStatus(name string) (*models.Status, bool, error) {
	return getOrCreate(s.db, name, func(n string) *models.Status {
		return &models.Status{Name: n}
	})
}

func (s *statusService) CreateStatus(name string) (*models.Status, error) {
	return createUnique(s.db, name, func(n string) *models.Status {
		return &models.Status{Name: n}
	})
}

func (s *statusService) DeleteStatus(id uint) error {
	return deleteProtected[models.Status](s.db, id, "status_id", apperrors.ErrStatusNotFound, apperrors.ErrStatusInUse)
}
