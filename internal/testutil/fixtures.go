package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"cashflow/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// counter provides unique names across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestStatus creates a status with the given name, or a unique one when name is empty.
func CreateTestStatus(t *testing.T, db *gorm.DB, name string) *models.Status {
	t.Helper()

	status := &models.Status{Name: uniqueName("Status", name)}
	if err := db.Create(status).Error; err != nil {
		t.Fatalf("failed to create test status: %v", err)
	}
	return status
}

// CreateTestType creates a type with the given name, or a unique one when name is empty.
func CreateTestType(t *testing.T, db *gorm.DB, name string) *models.Type {
	t.Helper()

	typ := &models.Type{Name: uniqueName("Type", name)}
	if err := db.Create(typ).Error; err != nil {
		t.Fatalf("failed to create test type: %v", err)
	}
	return typ
}

// CreateTestCategory creates a category with the given name, or a unique one when name is empty.
func CreateTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: uniqueName("Category", name)}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestSubcategory creates a subcategory under categoryID.
func CreateTestSubcategory(t *testing.T, db *gorm.DB, categoryID uint, name string) *models.Subcategory {
	t.Helper()

	sub := &models.Subcategory{Name: uniqueName("Subcategory", name), CategoryID: categoryID}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("failed to create test subcategory: %v", err)
	}
	return sub
}

// Lookups bundles one value of each lookup table.
type Lookups struct {
	Status      *models.Status
	Type        *models.Type
	Category    *models.Category
	Subcategory *models.Subcategory
}

// CreateTestLookups creates a fresh status, type, category and subcategory.
func CreateTestLookups(t *testing.T, db *gorm.DB) Lookups {
	t.Helper()

	category := CreateTestCategory(t, db, "")
	return Lookups{
		Status:      CreateTestStatus(t, db, ""),
		Type:        CreateTestType(t, db, ""),
		Category:    category,
		Subcategory: CreateTestSubcategory(t, db, category.ID, ""),
	}
}

// CreateTestRecord creates a record classified by l, dated date (YYYY-MM-DD)
// with the given amount.
func CreateTestRecord(t *testing.T, db *gorm.DB, l Lookups, date, amount string) *models.Record {
	t.Helper()

	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		t.Fatalf("invalid fixture date %q: %v", date, err)
	}

	record := &models.Record{
		Date:          d,
		StatusID:      l.Status.ID,
		TypeID:        l.Type.ID,
		CategoryID:    l.Category.ID,
		SubcategoryID: l.Subcategory.ID,
		Amount:        decimal.RequireFromString(amount),
	}
	if err := db.Omit(clause.Associations).Create(record).Error; err != nil {
		t.Fatalf("failed to create test record: %v", err)
	}
	return record
}

// CountRows returns the number of rows of model's table.
func CountRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}

func uniqueName(prefix, name string) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("Test %s %d", prefix, nextID())
}
