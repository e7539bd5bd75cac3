package httperr

import "errors"

const (
	CodeValidation             = "VALIDATION"
	CodeBookingConflict        = "BOOKING_CONFLICT"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"
	CodeNotFound               = "NOT_FOUND"
	CodeForbidden              = "FORBIDDEN"
	CodeStateTransitionInvalid = "STATE_TRANSITION_INVALID"
	CodeInternal               = "INTERNAL"
)

// BusinessError is a failure the caller can act on. Conflicts carries the
// intervals that blocked a booking; Details carries anything else worth
// returning (current status, rejected action, offending field).
type BusinessError struct {
	Code      string
	Message   string
	Conflicts any
	Details   map[string]any
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func New(code, message string) BusinessError {
	return BusinessError{Code: code, Message: message}
}

func (e BusinessError) WithConflicts(conflicts any) BusinessError {
	e.Conflicts = conflicts
	return e
}

func (e BusinessError) WithDetails(details map[string]any) BusinessError {
	e.Details = details
	return e
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return BusinessError{}, false
}
