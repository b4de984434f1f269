package service

import (
	"errors"
	"fmt"

	"go-pos-terminal/internal/model"
	"go-pos-terminal/pkg/validator"

	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicateKey        = errors.New("already exists")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientStock   = errors.New("not enough stock available")
	ErrInsufficientPayment = errors.New("amount paid cannot be less than total")
	ErrEmptyCart           = errors.New("no items in current sale")
	ErrReferencedByHistory = errors.New("referenced by sale history")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidDate         = model.ErrInvalidDate
)

// translate maps storage errors onto the service taxonomy
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s %w", what, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s %w", what, ErrDuplicateKey)
	default:
		return err
	}
}

// validate runs struct validation and reports the first failure
func validate(v interface{}) error {
	if errs := validator.ValidateStruct(v); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}
	return nil
}
