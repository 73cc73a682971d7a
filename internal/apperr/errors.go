// Package apperr defines the error taxonomy shared by the marketplace core.
// Core packages wrap one of the sentinels below with context; the request
// layer inspects them with errors.Is and maps them onto transport codes.
package apperr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrTooManyAttempts   = errors.New("too many attempts")
	ErrInvalidCode       = errors.New("invalid code")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrConflict          = errors.New("conflict")

	// ErrUnavailable marks infrastructure faults (store unreachable, query failed).
	ErrUnavailable = errors.New("unavailable")
)

// kinds is ordered: the first sentinel matched wins in Reason.
var kinds = []struct {
	err    error
	reason string
}{
	{ErrInvalidArgument, "INVALID_ARGUMENT"},
	{ErrNotFound, "NOT_FOUND"},
	{ErrForbidden, "FORBIDDEN"},
	{ErrUnauthenticated, "UNAUTHENTICATED"},
	{ErrInvalidTransition, "INVALID_TRANSITION"},
	{ErrTooManyAttempts, "TOO_MANY_ATTEMPTS"},
	{ErrInvalidCode, "INVALID_CODE"},
	{ErrInsufficientFunds, "INSUFFICIENT_FUNDS"},
	{ErrConflict, "CONFLICT"},
	{ErrUnavailable, "UNAVAILABLE"},
}

// Reason returns the taxonomy name of err, or "INTERNAL" if err carries none.
func Reason(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.reason
		}
	}
	return "INTERNAL"
}

// Wrap annotates a sentinel with a formatted message.
func Wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}

// FromStore translates a persistence error into the taxonomy.
// A nil error stays nil. Errors that already carry a kind pass through.
func FromStore(err error, what string) error {
	if err == nil {
		return nil
	}
	if Reason(err) != "INTERNAL" {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", what, ErrConflict)
	default:
		return fmt.Errorf("%s: %w: %w", what, ErrUnavailable, err)
	}
}
