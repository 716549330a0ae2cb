package testutil

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	apperrors "finmanager/internal/errors"
)

// AssertAppError checks that err is an *AppError carrying the expected code
// and returns it for further checks.
func AssertAppError(t *testing.T, err error, expectedCode string) *apperrors.AppError {
	t.Helper()

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError with code %q, got %T: %v", expectedCode, err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
	return appErr
}

// AssertNoError fails the test immediately if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertAmount compares a decimal against its string form, ignoring
// trailing zeros: "-42.1" matches -42.10.
func AssertAmount(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("expected amount %s, got %s", want, got)
	}
}

// AssertSameDay checks that got falls on the calendar day of want, in UTC.
func AssertSameDay(t *testing.T, got, want time.Time) {
	t.Helper()
	gy, gm, gd := got.UTC().Date()
	wy, wm, wd := want.UTC().Date()
	if gy != wy || gm != wm || gd != wd {
		t.Errorf("expected date %s, got %s", want.UTC().Format("2006-01-02"), got.UTC().Format("2006-01-02"))
	}
}
