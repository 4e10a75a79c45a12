package apperr

import "fmt"

// Kind classifies a business error so the transport layer can map it to a
// status code without inspecting message text.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindAdmissionDenied
	KindConflict
	KindGone
	KindInternal
)

// Kind sentinels, usable with errors.Is to match any error of that kind.
var (
	ErrValidation      = &Error{kind: KindValidation, message: "validation error"}
	ErrNotFound        = &Error{kind: KindNotFound, message: "not found"}
	ErrAdmissionDenied = &Error{kind: KindAdmissionDenied, message: "admission denied"}
	ErrConflict        = &Error{kind: KindConflict, message: "conflict"}
	ErrGone            = &Error{kind: KindGone, message: "gone"}
	ErrInternal        = &Error{kind: KindInternal, message: "internal error"}
)

// Error is a business error with a user-facing message.
type Error struct {
	kind    Kind
	message string
}

func (e *Error) Error() string {
	return e.message
}

// Kind returns the error classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// Is matches the exact error value, or any error of the same kind when the
// target is one of the kind sentinels above.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t == e {
		return true
	}
	switch t {
	case ErrValidation, ErrNotFound, ErrAdmissionDenied, ErrConflict, ErrGone, ErrInternal:
		return t.kind == e.kind
	}

	return false
}

// New creates an error of the given kind with a fixed message.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Well-known business errors.
var (
	ErrUserNotFound    = New(KindNotFound, "customer not found")
	ErrProductNotFound = New(KindNotFound, "product not found")
	ErrOrderNotFound   = New(KindNotFound, "order not found")
	ErrPromoNotFound   = New(KindNotFound, "promo code not found")
	ErrLimitNotSet     = New(KindNotFound, "order limit not set")

	ErrEmptyOrder      = New(KindValidation, "order must contain at least one item")
	ErrInvalidQuantity = New(KindValidation, "item quantity must be positive")
	ErrInvalidStatus   = New(KindValidation, "unknown order status")

	ErrInsufficientStock = New(KindConflict, "insufficient stock")
	ErrPromoLimitReached = New(KindConflict, "promo code usage limit reached")
	ErrPromoExpired      = New(KindGone, "promo code has expired")
)
