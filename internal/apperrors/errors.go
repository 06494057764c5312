package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but lacks the required role.
var ErrForbidden = errors.New("forbidden")

// ErrInternal is used for failures that should surface as a 500.
var ErrInternal = errors.New("internal error")

// Ledger errors.
var (
	// ErrInvalidAmount is returned when an amount that must be positive is not.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientBalance covers both credits larger than the owed balance
	// and purchases larger than the available credit.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrPendingBalance is returned when closing or deleting an account that still owes money.
	ErrPendingBalance = errors.New("account has a pending balance")
	// ErrInvalidAccountState is returned when the account status does not allow the operation.
	ErrInvalidAccountState = errors.New("invalid account state")
)

// State machine errors.
var (
	ErrInvalidSaleState    = errors.New("invalid sale state")
	ErrInvalidPaymentState = errors.New("invalid payment state")
	ErrInvalidSaleType     = errors.New("invalid sale type")
)

// AppError carries an HTTP-ish status code along with the wrapped cause.
// Repositories use it for infrastructure failures (begin/commit) where no
// domain sentinel applies.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
