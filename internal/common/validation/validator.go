package validation

import (
	stderrors "errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		if f.Kind() != reflect.Float32 && f.Kind() != reflect.Float64 {
			return false
		}
		v := f.Float()
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	})
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func Validate(data interface{}) []ValidationError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return []ValidationError{{Message: err.Error()}}
	}

	var errors []ValidationError
	for _, err := range fieldErrs {
		errors = append(errors, ValidationError{
			Field:   err.Field(),
			Message: message(err),
		})
	}
	return errors
}

// Summary joins validation errors into one human-readable line.
func Summary(errs []ValidationError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Field == "" {
			parts = append(parts, e.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

func message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", err.Param())
	case "finite":
		return "must be a finite number"
	default:
		return fmt.Sprintf("field must satisfy %s constraint", err.Tag())
	}
}
