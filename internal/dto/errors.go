package dto

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldErrors is the body of a 400 response: a list of messages per
// offending field.
type FieldErrors map[string][]string

// NewFieldErrors builds a FieldErrors with a single message.
func NewFieldErrors(field, message string) FieldErrors {
	return FieldErrors{field: {message}}
}

// FieldErrorsFromBinding unpacks a ShouldBindJSON error into per-field
// messages. Errors that are not validator errors (malformed JSON and the
// like) land under a non_field_errors key.
func FieldErrorsFromBinding(err error) FieldErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"non_field_errors": {err.Error()}}
	}

	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if field == "" {
			field = "non_field_errors"
		}
		fields[field] = append(fields[field], bindingMessage(fe))
	}
	return fields
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "slug":
		return "Enter a valid slug consisting of letters, numbers, underscores or hyphens."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		if fe.Kind().String() == "string" || fe.Kind().String() == "slice" {
			return fmt.Sprintf("Ensure this field has at least %s elements.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Value must be one of: %s.", fe.Param())
	default:
		return fmt.Sprintf("Failed %q validation.", fe.Tag())
	}
}
