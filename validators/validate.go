package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their json names so error keys match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates v and returns a field -> message map, empty when valid.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	err := validate.Struct(v)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs["request"] = err.Error()
		return errs
	}
	for _, fe := range fieldErrs {
		errs[fieldKey(fe)] = message(fe)
	}
	return errs
}

// Var validates a single value against a tag, for route params.
func Var(value interface{}, tag string) bool {
	return validate.Var(value, tag) == nil
}

// fieldKey drops the top-level struct name: "TrainingRequest.videos[0].url"
// becomes "videos[0].url".
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required!", fe.Field())
	case "email":
		return "Invalid email format!"
	case "url":
		return fmt.Sprintf("%s must be a valid URL!", fe.Field())
	case "uuid4", "uuid":
		return fmt.Sprintf("%s must be a valid id!", fe.Field())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s items!", fe.Field(), fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long!", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s!", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters!", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s!", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more!", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be %s or less!", fe.Field(), fe.Param())
	case "excludesall":
		return fmt.Sprintf("%s contains invalid characters (e.g., <, >, {, })!", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid!", fe.Field())
	}
}
