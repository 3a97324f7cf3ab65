package testutil

import (
	"errors"
	"slices"
	"sort"
	"testing"

	apperrors "cashflow/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) *apperrors.AppError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
	return appErr
}

// AssertFieldErrors checks that err is a VALIDATION_FAILED AppError whose
// field errors cover exactly the given fields.
func AssertFieldErrors(t *testing.T, err error, fields ...string) *apperrors.AppError {
	t.Helper()

	appErr := AssertAppError(t, err, apperrors.ErrValidation.Code)
	want := slices.Clone(fields)
	sort.Strings(want)
	if got := appErr.Fields.Fields(); !slices.Equal(got, want) {
		t.Errorf("expected field errors on %v, got %v", want, appErr.Fields)
	}
	return appErr
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
