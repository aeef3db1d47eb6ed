package domain

import (
	"errors"
	"fmt"
)

var (
	ErrOriginUntrusted     = errors.New("callback origin is not trusted")
	ErrMissingStatus       = errors.New("callback status is missing")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderExists         = errors.New("order already exists")
	ErrInvalidTransition   = errors.New("invalid order transition")
	ErrInvalidState        = errors.New("invalid order state")
	ErrAmountMismatch      = errors.New("amount mismatch")
	ErrUnsupportedCurrency = errors.New("currency not supported")
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeOriginUntrusted     = "ORIGIN_UNTRUSTED"
	ErrCodeMissingStatus       = "MISSING_STATUS"
	ErrCodeOrderNotFound       = "ORDER_NOT_FOUND"
	ErrCodeOrderExists         = "ORDER_EXISTS"
	ErrCodeInvalidTransition   = "INVALID_TRANSITION"
	ErrCodeInvalidState        = "INVALID_STATE"
	ErrCodeAmountMismatch      = "AMOUNT_MISMATCH"
	ErrCodeUnsupportedCurrency = "UNSUPPORTED_CURRENCY"
)

func NewOriginUntrustedError(sourceIP string) *DomainError {
	return &DomainError{
		Code:    ErrCodeOriginUntrusted,
		Message: fmt.Sprintf("source %q is not a gateway address", sourceIP),
		Err:     ErrOriginUntrusted,
	}
}

func NewMissingStatusError() *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingStatus,
		Message: "status parameter is required",
		Err:     ErrMissingStatus,
	}
}

func NewOrderNotFoundError(ref string) *DomainError {
	return &DomainError{
		Code:    ErrCodeOrderNotFound,
		Message: fmt.Sprintf("order %q not found", ref),
		Err:     ErrOrderNotFound,
	}
}

func NewOrderExistsError(id int64) *DomainError {
	return &DomainError{
		Code:    ErrCodeOrderExists,
		Message: fmt.Sprintf("order %d already exists", id),
		Err:     ErrOrderExists,
	}
}

func NewInvalidTransitionError(from, to OrderStatus) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
		Err:     ErrInvalidTransition,
	}
}

func NewInvalidStateError(current OrderStatus, expected ...OrderStatus) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidState,
		Message: fmt.Sprintf("invalid state: order is %s, expected one of %v", current, expected),
		Err:     ErrInvalidState,
	}
}

func NewAmountMismatchError(expected, reported string) *DomainError {
	return &DomainError{
		Code:    ErrCodeAmountMismatch,
		Message: fmt.Sprintf("amount mismatch: expected %s, gateway reported %s", expected, reported),
		Err:     ErrAmountMismatch,
	}
}

func NewUnsupportedCurrencyError(currency string) *DomainError {
	return &DomainError{
		Code:    ErrCodeUnsupportedCurrency,
		Message: fmt.Sprintf("currency %s is not supported by the gateway", currency),
		Err:     ErrUnsupportedCurrency,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
