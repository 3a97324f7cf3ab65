package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/filters"
	"cashflow/internal/forms"
	"cashflow/internal/models"
)

// recordService implements RecordServicer.
type recordService struct {
	db *gorm.DB
}

// NewRecordService creates a new RecordServicer.
func NewRecordService(db *gorm.DB) RecordServicer {
	return &recordService{db: db}
}

func (s *recordService) withLookups() *gorm.DB {
	return s.db.
		Preload("Status").
		Preload("Type").
		Preload("Category").
		Preload("Subcategory")
}

// ListRecords returns every record matching filter, most recent first, with
// its lookups loaded.
func (s *recordService) ListRecords(filter filters.RecordFilter) ([]models.Record, error) {
	records := []models.Record{}
	if err := s.withLookups().Scopes(filter.Scope()).Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return records, nil
}

func (s *recordService) GetRecordByID(id uint) (*models.Record, error) {
	var record models.Record
	if err := s.withLookups().First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &record, nil
}

func (s *recordService) CreateRecord(input forms.RecordInput) (*models.Record, error) {
	if err := s.checkReferences(input); err != nil {
		return nil, err
	}

	record := models.Record{
		Date:          input.Date,
		StatusID:      input.StatusID,
		TypeID:        input.TypeID,
		CategoryID:    input.CategoryID,
		SubcategoryID: input.SubcategoryID,
		Amount:        input.Amount,
		Comment:       input.Comment,
	}
	if err := s.db.Omit(clause.Associations).Create(&record).Error; err != nil {
		return nil, s.classify(err)
	}
	return s.GetRecordByID(record.ID)
}

// UpdateRecord replaces every editable field of record id. Fields are written
// even when zero so a comment can be cleared.
func (s *recordService) UpdateRecord(id uint, input forms.RecordInput) (*models.Record, error) {
	record, err := s.GetRecordByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(input); err != nil {
		return nil, err
	}

	err = s.db.Model(&models.Record{Base: models.Base{ID: record.ID}}).
		Omit(clause.Associations).
		Select("Date", "StatusID", "TypeID", "CategoryID", "SubcategoryID", "Amount", "Comment").
		Updates(models.Record{
			Date:          input.Date,
			StatusID:      input.StatusID,
			TypeID:        input.TypeID,
			CategoryID:    input.CategoryID,
			SubcategoryID: input.SubcategoryID,
			Amount:        input.Amount,
			Comment:       input.Comment,
		}).Error
	if err != nil {
		return nil, s.classify(err)
	}
	return s.GetRecordByID(id)
}

func (s *recordService) DeleteRecord(id uint) error {
	result := s.db.Delete(&models.Record{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrRecordNotFound
	}
	return nil
}

// checkReferences reports, per field, every selected lookup that does not exist.
func (s *recordService) checkReferences(input forms.RecordInput) error {
	refs := []struct {
		field string
		model interface{}
		id    uint
	}{
		{forms.FieldStatus, &models.Status{}, input.StatusID},
		{forms.FieldType, &models.Type{}, input.TypeID},
		{forms.FieldCategory, &models.Category{}, input.CategoryID},
		{forms.FieldSubcategory, &models.Subcategory{}, input.SubcategoryID},
	}

	fieldErrs := apperrors.FieldErrors{}
	for _, ref := range refs {
		var n int64
		if err := s.db.Model(ref.model).Where("id = ?", ref.id).Count(&n).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if n == 0 {
			fieldErrs.Add(ref.field, forms.MsgInvalidChoice)
		}
	}
	if len(fieldErrs) > 0 {
		return apperrors.WithFields(apperrors.ErrValidation, fieldErrs)
	}
	return nil
}

func (s *recordService) classify(err error) error {
	if isForeignKeyViolation(s.db, err) {
		return apperrors.Wrap(apperrors.ErrInvalidReference, err)
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
