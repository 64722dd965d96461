package usecase

import "errors"

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindConflict
	KindUnauthorized
	KindPersistence
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindPersistence:
		return "persistence"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

const (
	MsgValidationFailed   = "Validation failed"
	MsgListingNotFound    = "Listing not found"
	MsgBookingNotFound    = "Booking not found"
	MsgListingUnavailable = "Listing is not available for the given dates"
	MsgInvalidCredentials = "Invalid email or password"
	MsgInvalidToken       = "Token is invalid or expired"
	MsgInternal           = "Internal server error"
)

// Error is what services return for every expected failure. Message is safe
// to show to the caller; Err keeps the underlying cause for logs.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// AsError extracts a service error from err. Anything else is reported as
// KindInternal so callers can always switch on a kind.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindInternal, Message: MsgInternal, Err: err}
}

func validationError(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: MsgValidationFailed, Fields: fields}
}

func fieldError(field, message string) *Error {
	return validationError(map[string]string{field: message})
}

func notFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func conflictError(message string, err error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

func unauthorizedError(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// persistenceError surfaces the raw store error text to the caller.
func persistenceError(err error) *Error {
	return &Error{Kind: KindPersistence, Message: err.Error(), Err: err}
}

func internalError(err error) *Error {
	return &Error{Kind: KindInternal, Message: MsgInternal, Err: err}
}
