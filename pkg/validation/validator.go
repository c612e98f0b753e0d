// Package validation plugs go-playground/validator into echo.
package validation

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// EchoValidator implements echo.Validator.
type EchoValidator struct {
	validate *validator.Validate
}

var _ echo.Validator = (*EchoValidator)(nil)

func NewEchoValidator() *EchoValidator {
	return &EchoValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate runs the `validate` struct tags of i.
func (v *EchoValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
