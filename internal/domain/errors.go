package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("invalid product")
	ErrDuplicateKey      = errors.New("product code already exists")
	ErrNotFound          = errors.New("product not found")
	ErrInvalidRange      = errors.New("invalid combination parameters")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrDuplicateLine     = errors.New("product already in cart")
	ErrCartClosed        = errors.New("cart is no longer open")
)

// ValidationError reports the first field that failed product construction.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
