// Package validation checks form payloads before they are sent to the API.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/taskboard-client/internal/errors"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates v and returns an INVALID_INPUT APIError whose Details map
// each failing field to a readable message.
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierrors.Invalid(err.Error(), nil)
	}

	details := make(map[string]string, len(fieldErrs))
	first := ""
	for _, fe := range fieldErrs {
		msg := message(fe)
		details[fe.Field()] = msg
		if first == "" {
			first = msg
		}
	}
	return apierrors.Invalid(first, details)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex color", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must use the %s layout", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
