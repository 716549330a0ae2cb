// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// codes checks normalized values against the built-in tags.
var codes = validator.New()

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		_ = v.RegisterValidation("currency", validateCurrency)
	}
}

// validateCurrency accepts ISO 4217 codes in any letter case.
func validateCurrency(fl validator.FieldLevel) bool {
	return codes.Var(strings.ToUpper(fl.Field().String()), "iso4217") == nil
}
