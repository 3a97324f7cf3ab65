package forms

import (
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
)

// ValidateLookupName trims name and checks it fits a lookup name column.
func ValidateLookupName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
	}
	if n := utf8.RuneCountInString(name); n > models.NameMaxLength {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", models.NameMaxLength, n))
	}
	return name, nil
}
