package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/barbox/barbox-admin/internal/shared"
)

// ValidationError names the first field that failed a presence check.
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s failed %s check", e.Field, e.Tag)
}

// Is lets callers match shared.ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == shared.ErrValidation
}

// UserMessage renders the violation for display.
func (e *ValidationError) UserMessage() string {
	return fmt.Sprintf("El campo %s es obligatorio", e.Field)
}

// newValidator reports JSON field names instead of Go field names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// check runs the struct tags declared on the draft and returns the first
// violation.
func check(v *validator.Validate, draft any) (*ValidationError, error) {
	err := v.Struct(draft)
	if err == nil {
		return nil, nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return &ValidationError{Field: first.Field(), Tag: first.Tag()}, nil
	}
	return nil, fmt.Errorf("form: validate: %w", err)
}
