package booking

import (
	"errors"
	"fmt"

	"github.com/BruksfildServices01/golf-reservation/internal/httperr"
)

// Storage-level outcomes the repository translates its driver errors into.
var (
	ErrNotFound               = errors.New("booking: record not found")
	ErrSlotTaken              = errors.New("booking: slot already taken")
	ErrDuplicateRequest       = errors.New("booking: duplicate request id")
	ErrConcurrentModification = errors.New("booking: concurrent modification")
)

func Validation(field, message string) error {
	return httperr.New(httperr.CodeValidation, message).
		WithDetails(map[string]any{"field": field})
}

func Conflict(conflicts []Interval) error {
	if conflicts == nil {
		conflicts = []Interval{}
	}
	return httperr.New(
		httperr.CodeBookingConflict,
		"The requested time is no longer available.",
	).WithConflicts(conflicts)
}

func ConcurrentModification() error {
	return httperr.New(
		httperr.CodeConcurrentModification,
		"The booking was changed by another request. Refresh and try again.",
	)
}

func NotFound(entity string, id any) error {
	return httperr.New(httperr.CodeNotFound, fmt.Sprintf("%s not found", entity)).
		WithDetails(map[string]any{"entity": entity, "id": id})
}

func Forbidden() error {
	return httperr.New(httperr.CodeForbidden, "You cannot act on this booking.")
}

func Internal(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
