package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"

	"github.com/mallkiller3-ctrl/daily-health/internal/model"
)

var validate = validator.New()

func ValidateEntry(e model.LogEntry) error {
	return validationError(ErrInvalidEntry, validate.Struct(e))
}

func ValidateProfile(p model.Profile) error {
	return validationError(ErrInvalidProfile, validate.Struct(p))
}

// validationError folds every failed field into one error wrapping kind.
func validationError(kind, err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", kind, err)
	}
	var combined error
	for _, fe := range fieldErrs {
		combined = multierr.Append(combined, fmt.Errorf("%s fails %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("%w: %w", kind, combined)
}
