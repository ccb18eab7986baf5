package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/product_catalog/internal/apperr"
	"github.com/Skotchmaster/product_catalog/internal/logging"
)

type errorBody struct {
	Error string `json:"error"`
}

// ErrorHandler renders every error as {"error": message}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, msg := publicError(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error("unhandled_error", "status", status, "error", err)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(status)
	} else {
		werr = c.JSON(status, errorBody{Error: msg})
	}
	if werr != nil {
		logging.FromContext(c.Request().Context()).Error("error_response_failed", "error", werr)
	}
}

func publicError(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return he.Code, "Internal server error"
		}
		if m, ok := he.Message.(string); ok && m != "" {
			return he.Code, m
		}
		return he.Code, http.StatusText(he.Code)
	}
	return apperr.Public(err)
}

// bindError turns a body binding failure into a validation error.
func bindError(err error) error {
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return apperr.Validation(fmt.Sprintf("%q must be %s", ute.Field, jsonKind(ute.Type)))
	}
	return apperr.Validation("Invalid request body")
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "valid"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "valid"
	}
}
