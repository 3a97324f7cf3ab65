package services

import (
	"cashflow/internal/filters"
	"cashflow/internal/forms"
	"cashflow/internal/models"
)

// StatusServicer defines the contract for status lookups.
type StatusServicer interface {
	ListStatuses() ([]models.Status, error)
	GetStatusByID(id uint) (*models.Status, error)
	// GetOrCreateStatus returns the status named name, creating it when absent.
	// The boolean reports whether a row was inserted.
	GetOrCreateStatus(name string) (*models.Status, bool, error)
	CreateStatus(name string) (*models.Status, error)
	DeleteStatus(id uint) error
}

// TypeServicer defines the contract for type lookups.
type TypeServicer interface {
	ListTypes() ([]models.Type, error)
	GetTypeByID(id uint) (*models.Type, error)
	GetOrCreateType(name string) (*models.Type, bool, error)
	CreateType(name string) (*models.Type, error)
	DeleteType(id uint) error
}

// CategoryServicer defines the contract for category lookups.
type CategoryServicer interface {
	ListCategories() ([]models.Category, error)
	GetCategoryByID(id uint) (*models.Category, error)
	// GetCategoriesByType lists the categories used by records of typeID.
	GetCategoriesByType(typeID uint) ([]models.LookupItem, error)
	CreateCategory(name string) (*models.Category, error)
	// DeleteCategory removes an unreferenced category together with its subcategories.
	DeleteCategory(id uint) error
}

// SubcategoryServicer defines the contract for subcategory lookups.
type SubcategoryServicer interface {
	ListSubcategories() ([]models.Subcategory, error)
	GetSubcategoryByID(id uint) (*models.Subcategory, error)
	GetSubcategoriesByCategory(categoryID uint) ([]models.LookupItem, error)
	CreateSubcategory(categoryID uint, name string) (*models.Subcategory, error)
	DeleteSubcategory(id uint) error
}

// RecordServicer defines the contract for cash-flow records.
type RecordServicer interface {
	ListRecords(filter filters.RecordFilter) ([]models.Record, error)
	GetRecordByID(id uint) (*models.Record, error)
	CreateRecord(input forms.RecordInput) (*models.Record, error)
	UpdateRecord(id uint, input forms.RecordInput) (*models.Record, error)
	DeleteRecord(id uint) error
}
