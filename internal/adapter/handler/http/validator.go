package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "github.com/wekeepgrowing/juansite-billing/pkg/errors"
)

// RequestValidator plugs go-playground/validator into echo's Validate hook
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Validate reports the first failing field as an INVALID_ARGUMENT error
func (v *RequestValidator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperrors.NewAppError(apperrors.ErrInvalidArgument,
			fmt.Sprintf("%s is %s", fe.Field(), describeTag(fe)), err)
	}
	return apperrors.NewAppError(apperrors.ErrInvalidArgument, "invalid request", err)
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "max":
		return "too long"
	default:
		return "invalid"
	}
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.ToHTTPError(apperrors.NewAppError(apperrors.ErrInvalidArgument, "invalid request body", err))
	}
	if err := c.Validate(req); err != nil {
		return apperrors.ToHTTPError(err)
	}
	return nil
}
