package models

// NameMaxLength is the column width shared by every lookup name.
const NameMaxLength = 50

// Status is the business context of a record, e.g. Business or Personal.
type Status struct {
	Base
	Name string `gorm:"size:50;not null;uniqueIndex" json:"name"`
}

func (s Status) String() string { return s.Name }

// Type is the direction of a record, e.g. Income or Expense.
type Type struct {
	Base
	Name string `gorm:"size:50;not null;uniqueIndex" json:"name"`
}

func (t Type) String() string { return t.Name }

// Category is the primary classification of a record.
type Category struct {
	Base
	Name string `gorm:"size:50;not null;uniqueIndex" json:"name"`
}

func (c Category) String() string { return c.Name }

// Subcategory refines a Category. Names are unique system-wide, not per category.
type Subcategory struct {
	Base
	Name       string `gorm:"size:50;not null;uniqueIndex" json:"name"`
	CategoryID uint   `gorm:"not null;index" json:"category_id"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"category,omitempty"`
}

func (s Subcategory) String() string { return s.Name }

// LookupItem is the id/name pair served to dependent dropdowns.
type LookupItem struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
