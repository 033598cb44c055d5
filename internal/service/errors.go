package service

import (
	"errors"
	"strings"
)

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrValidation           = errors.New("validation failed")
	ErrOrderNotFound        = errors.New("order not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrProviderNotFound     = errors.New("api configuration not found")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrOrderNumberExhausted = errors.New("could not allocate a unique order number")
	ErrCartStoreUnavailable = errors.New("cart storage is not configured")
)

type FieldViolation struct {
	Field   string
	Message string
	Tag     string
}

// ValidationError несёт детализацию по полям; errors.Is(err, ErrValidation) == true
type ValidationError struct {
	Fields []FieldViolation
	Cause  error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrValidation, e.Cause}
	}
	return []error{ErrValidation}
}

func newFieldError(field, tag, msg string) *ValidationError {
	return &ValidationError{Fields: []FieldViolation{{Field: field, Message: msg, Tag: tag}}}
}
