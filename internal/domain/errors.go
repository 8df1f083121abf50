package domain

import "errors"

var (
	// ErrInvalidPage signals a page window outside the allowed range.
	ErrInvalidPage = errors.New("invalid page window")
	// ErrMalformedBillNumber signals a bill number that does not match the formal pattern.
	ErrMalformedBillNumber = errors.New("malformed bill number")
	// ErrInvalidDateRange signals an unparseable or inverted date range.
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrInvalidQuery signals an unusable query parameter set.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrBackendUnavailable signals a transient failure of a backing service.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrMalformedActivity signals an activity record with neither a bill nor a minutes reference.
	ErrMalformedActivity = errors.New("activity has no bill or minutes reference")
	// ErrMalformedID signals an identifier outside the class:base form.
	ErrMalformedID = errors.New("malformed politylink id")
)
