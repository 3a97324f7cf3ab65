// Package filters composes record list queries from optional query parameters.
package filters

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"cashflow/internal/models"
)

// RecordFilter holds the optional constraints of a record listing. A nil
// field imposes no constraint.
type RecordFilter struct {
	DateAfter     *time.Time
	DateBefore    *time.Time
	StatusID      *uint
	TypeID        *uint
	CategoryID    *uint
	SubcategoryID *uint
}

// FromQuery parses filter parameters. Values that fail to parse are dropped
// individually; parsing never fails as a whole.
func FromQuery(q url.Values) RecordFilter {
	return RecordFilter{
		DateAfter:     parseDate(q.Get("date_after")),
		DateBefore:    parseDate(q.Get("date_before")),
		StatusID:      parseID(first(q, "status", "status_id")),
		TypeID:        parseID(first(q, "type", "type_id")),
		CategoryID:    parseID(first(q, "category", "category_id")),
		SubcategoryID: parseID(first(q, "subcategory", "subcategory_id")),
	}
}

// IsEmpty reports whether no constraint is set.
func (f RecordFilter) IsEmpty() bool {
	return f.DateAfter == nil && f.DateBefore == nil && f.StatusID == nil &&
		f.TypeID == nil && f.CategoryID == nil && f.SubcategoryID == nil
}

// Apply adds the filter's constraints, combined with AND, to q.
func (f RecordFilter) Apply(q *gorm.DB) *gorm.DB {
	if f.DateAfter != nil {
		q = q.Where("records.date >= ?", *f.DateAfter)
	}
	if f.DateBefore != nil {
		q = q.Where("records.date <= ?", *f.DateBefore)
	}
	if f.StatusID != nil {
		q = q.Where("records.status_id = ?", *f.StatusID)
	}
	if f.TypeID != nil {
		q = q.Where("records.type_id = ?", *f.TypeID)
	}
	if f.CategoryID != nil {
		q = q.Where("records.category_id = ?", *f.CategoryID)
	}
	if f.SubcategoryID != nil {
		q = q.Where("records.subcategory_id = ?", *f.SubcategoryID)
	}
	return q
}

// Ordered sorts most recent first; same-date rows come newest insert first.
func Ordered(q *gorm.DB) *gorm.DB {
	return q.Order("records.date DESC").Order("records.id DESC")
}

// Scope returns the filter and ordering as a single gorm scope.
func (f RecordFilter) Scope() func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return Ordered(f.Apply(q))
	}
}

// Values renders the filter back into query parameters, for echoing it into
// the filter form.
func (f RecordFilter) Values() url.Values {
	v := url.Values{}
	if f.DateAfter != nil {
		v.Set("date_after", f.DateAfter.Format(models.DateLayout))
	}
	if f.DateBefore != nil {
		v.Set("date_before", f.DateBefore.Format(models.DateLayout))
	}
	setID(v, "status", f.StatusID)
	setID(v, "type", f.TypeID)
	setID(v, "category", f.CategoryID)
	setID(v, "subcategory", f.SubcategoryID)
	return v
}

func first(q url.Values, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(q.Get(k)); v != "" {
			return v
		}
	}
	return ""
}

func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}

func parseID(raw string) *uint {
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil
	}
	v := uint(id)
	return &v
}

func setID(v url.Values, key string, id *uint) {
	if id != nil {
		v.Set(key, strconv.FormatUint(uint64(*id), 10))
	}
}
