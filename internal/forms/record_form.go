// Package forms turns raw submitted values into validated, typed inputs.
// Every function here is pure: no storage access, no side effects.
package forms

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
	cfvalidator "cashflow/internal/validator"
)

// Form field names, shared with templates and query strings.
const (
	FieldDate        = "date"
	FieldStatus      = "status"
	FieldType        = "type"
	FieldCategory    = "category"
	FieldSubcategory = "subcategory"
	FieldAmount      = "amount"
	FieldComment     = "comment"
)

// Field messages.
const (
	MsgRequired          = "This field is required."
	MsgSelectionRequired = "This selection is required"
	MsgInvalidChoice     = "Select a valid choice. That choice is not one of the available choices."
	MsgInvalidNumber     = "Enter a number."
	MsgMaxDigits         = "Ensure that there are no more than 10 digits in total."
	MsgMaxPlaces         = "Ensure that there are no more than 2 decimal places."
	MsgMaxWholeDigits    = "Ensure that there are no more than 8 digits before the decimal point."
	MsgAmountPositive    = "Amount must be greater than zero."
	MsgInvalidDate       = "Enter a valid date."
)

// RecordForm holds a record submission exactly as received. Its rules are
// enforced by gin's binding engine once the custom tags are registered.
type RecordForm struct {
	Date        string `form:"date" binding:"omitempty,date_ymd"`
	Status      string `form:"status" binding:"required,choice_id"`
	Type        string `form:"type" binding:"required,choice_id"`
	Category    string `form:"category" binding:"required,choice_id"`
	Subcategory string `form:"subcategory" binding:"required,choice_id"`
	Amount      string `form:"amount" binding:"required,decimal,max_digits=10,max_places=2,max_whole=8,positive_decimal"`
	Comment     string `form:"comment"`
}

// RecordInput is a validated record ready for persistence.
type RecordInput struct {
	Date          time.Time
	StatusID      uint
	TypeID        uint
	CategoryID    uint
	SubcategoryID uint
	Amount        decimal.Decimal
	Comment       string
}

// Normalize trims surrounding whitespace from every value except the comment.
func (f RecordForm) Normalize() RecordForm {
	f.Date = strings.TrimSpace(f.Date)
	f.Status = strings.TrimSpace(f.Status)
	f.Type = strings.TrimSpace(f.Type)
	f.Category = strings.TrimSpace(f.Category)
	f.Subcategory = strings.TrimSpace(f.Subcategory)
	f.Amount = strings.TrimSpace(f.Amount)
	return f
}

// ValidateRecord checks a submission and reports every failing field at once.
// An omitted date defaults to the calendar day of now.
func ValidateRecord(form RecordForm, now time.Time) (*RecordInput, apperrors.FieldErrors) {
	form = form.Normalize()

	fieldErrs := apperrors.FieldErrors{}
	if err := cfvalidator.Engine().Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			fieldErrs.Add(FieldAmount, err.Error())
			return nil, fieldErrs
		}
		for _, fe := range verrs {
			name := fieldName(fe.StructField())
			fieldErrs.Add(name, message(name, fe.Tag()))
		}
		return nil, fieldErrs
	}

	input := &RecordInput{
		StatusID:      mustID(form.Status),
		TypeID:        mustID(form.Type),
		CategoryID:    mustID(form.Category),
		SubcategoryID: mustID(form.Subcategory),
		Amount:        decimal.RequireFromString(form.Amount),
		Comment:       form.Comment,
	}

	if form.Date == "" {
		input.Date = DateOf(now)
	} else {
		d, _ := time.Parse(models.DateLayout, form.Date)
		input.Date = d
	}
	return input, nil
}

// FormFromRecord pre-populates a form with a stored record's values.
func FormFromRecord(r *models.Record) RecordForm {
	return RecordForm{
		Date:        r.FormattedDate(),
		Status:      formatID(r.StatusID),
		Type:        formatID(r.TypeID),
		Category:    formatID(r.CategoryID),
		Subcategory: formatID(r.SubcategoryID),
		Amount:      r.FormattedAmount(),
		Comment:     r.Comment,
	}
}

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fieldName(structField string) string {
	return strings.ToLower(structField)
}

func message(field, tag string) string {
	switch tag {
	case "required":
		if field == FieldAmount {
			return MsgRequired
		}
		return MsgSelectionRequired
	case "choice_id":
		return MsgInvalidChoice
	case "decimal":
		return MsgInvalidNumber
	case "max_digits":
		return MsgMaxDigits
	case "max_places":
		return MsgMaxPlaces
	case "max_whole":
		return MsgMaxWholeDigits
	case "positive_decimal":
		return MsgAmountPositive
	case "date_ymd":
		return MsgInvalidDate
	}
	return "Invalid value."
}

func mustID(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 64)
	return uint(id)
}

func formatID(id uint) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}
