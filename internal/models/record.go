package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire and display format of record dates.
const DateLayout = "2006-01-02"

// Record is a single cash-flow transaction.
type Record struct {
	Base
	Date          time.Time       `gorm:"type:date;not null;index" json:"date"`
	StatusID      uint            `gorm:"not null;index" json:"status_id"`
	TypeID        uint            `gorm:"not null;index" json:"type_id"`
	CategoryID    uint            `gorm:"not null;index" json:"category_id"`
	SubcategoryID uint            `gorm:"not null;index" json:"subcategory_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(10,2);not null;check:amount > 0" json:"amount"`
	Comment       string          `gorm:"type:text" json:"comment"`

	// Relationships
	Status      *Status      `gorm:"foreignKey:StatusID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"status,omitempty"`
	Type        *Type        `gorm:"foreignKey:TypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"type,omitempty"`
	Category    *Category    `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	Subcategory *Subcategory `gorm:"foreignKey:SubcategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"subcategory,omitempty"`
}

// FormattedDate renders Date as YYYY-MM-DD.
func (r Record) FormattedDate() string {
	return r.Date.Format(DateLayout)
}

// FormattedAmount renders Amount with exactly two decimals.
func (r Record) FormattedAmount() string {
	return r.Amount.StringFixed(2)
}

func (r Record) String() string {
	return r.FormattedDate() + " - " + r.FormattedAmount()
}
