package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "livingwage/internal/errors"
)

// FieldError describes one failed struct tag rule
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Value string `json:"value"`
}

// StructValidator validates typed records using `validate` struct tags
type StructValidator struct {
	validate *validator.Validate
}

// NewStructValidator creates a validator that reports JSON field names
func NewStructValidator() *StructValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &StructValidator{validate: v}
}

// Validate checks s and returns a VALIDATION AppError listing every failed field.
// label identifies the record in the message, e.g. "row 4".
func (sv *StructValidator) Validate(label string, s interface{}) error {
	err := sv.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationErrorWithCause(fmt.Sprintf("%s: invalid record", label), err)
	}

	fields := make([]FieldError, 0, len(verrs))
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Value: fmt.Sprintf("%v", fe.Value()),
		})
		names = append(names, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}

	return apperrors.NewValidationErrorWithCause(
		fmt.Sprintf("%s: invalid fields %s", label, strings.Join(names, ", ")), err).
		WithContext("fields", fields)
}
