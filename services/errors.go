package services

import "errors"

// Error kinds. Every error returned by a service matches exactly one of them
// under errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage error")
)

var (
	ErrInvalidCartInput = newError(ErrValidation, "Invalid productId or quantity")
	ErrInvalidProductID = newError(ErrValidation, "Invalid product id")
	ErrInvalidQuantity  = newError(ErrValidation, "Invalid quantity")
	ErrCustomerRequired = newError(ErrValidation, "Name and email are required")
	ErrEmptyCart        = newError(ErrValidation, "Cart is empty")
	ErrQuantityTooLarge = newError(ErrValidation, "Quantity exceeds the maximum allowed")
	ErrProductNotFound  = newError(ErrNotFound, "Product not found")
	ErrCartItemNotFound = newError(ErrNotFound, "Cart item not found")
)

// Error carries a client-facing message and unwraps to its kind.
type Error struct {
	kind    error
	message string
	cause   error
}

func newError(kind error, message string) *Error {
	return &Error{kind: kind, message: message}
}

func storageError(cause error) *Error {
	return &Error{kind: ErrStorage, message: "Internal server error", cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *Error) Message() string {
	return e.message
}

func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

