package agecalc

import "errors"

// Error codes surfaced to the transport layer through apperrors.
const (
	CodeInvalidInput     = "invalid_input"
	CodeFutureBirthDate  = "future_birth_date"
	CodeDateOrder        = "date_order"
	CodeAgeRangeExceeded = "age_range_exceeded"
)

// ErrInvalidDateOrder is returned by CalendarDelta when birth is after target.
var ErrInvalidDateOrder = errors.New("birth date is after target date")
