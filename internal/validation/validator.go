package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Skotchmaster/product_catalog/internal/apperr"
)

// Validator plugs go-playground/validator into echo and turns the first
// failing rule into a Validation error naming the JSON field.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

func (cv *Validator) Validate(i any) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperr.Validation(Message(verrs[0]))
	}
	return apperr.Validation(err.Error())
}

func Message(fe validator.FieldError) string {
	field := fe.Field()
	kind := fe.Kind()
	if kind == reflect.Ptr {
		kind = fe.Type().Elem().Kind()
	}
	isText := kind == reflect.String

	tag := fe.Tag()
	switch {
	case strings.HasPrefix(tag, "url"):
		tag = "url"
	case strings.HasPrefix(tag, "email"):
		tag = "email"
	}

	switch tag {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "min", "gte":
		if isText {
			return fmt.Sprintf("%q length must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%q must be greater than or equal to %s", field, fe.Param())
	case "max", "lte":
		if isText {
			return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%q must be less than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%q must be greater than %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%q must be a valid email", field)
	case "url", "uri", "http_url":
		return fmt.Sprintf("%q must be a valid uri", field)
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}
