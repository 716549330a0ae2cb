package client

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	// Report fields by their label so messages read "Name is required".
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		if label := sf.Tag.Get("label"); label != "" {
			return label
		}
		return sf.Name
	})
	return v
}

// CategoryForm holds the editable fields of a category.
type CategoryForm struct {
	Name        string `json:"name" validate:"notblank" label:"Name"`
	Description string `json:"description"`
}

// Validate checks the form before it is submitted.
func (f CategoryForm) Validate() error { return validateForm(f) }

// CounterpartyForm holds the editable fields of a counterparty.
type CounterpartyForm struct {
	Name        string `json:"name" validate:"notblank" label:"Name"`
	Reference   string `json:"reference"`
	Description string `json:"description"`
}

// Validate checks the form before it is submitted.
func (f CounterpartyForm) Validate() error { return validateForm(f) }

// TransactionForm holds the fields of a new transaction. Dates use YYYY-MM-DD.
type TransactionForm struct {
	TransactionDate string           `json:"transaction_date" validate:"required,datetime=2006-01-02" label:"Transaction date"`
	ValueDate       string           `json:"value_date,omitempty" validate:"omitempty,datetime=2006-01-02" label:"Value date"`
	Amount          *decimal.Decimal `json:"amount" validate:"required" label:"Amount"`
	Currency        string           `json:"currency,omitempty" validate:"omitempty,len=3" label:"Currency"`
	Description     string           `json:"description"`
	Reference       string           `json:"reference"`
	CategoryID      *uint            `json:"category_id,omitempty"`
	CounterpartyID  *uint            `json:"counterparty_id,omitempty"`
}

// Validate checks the form before it is submitted.
func (f TransactionForm) Validate() error { return validateForm(f) }

// validateForm reports the first failing field as a user-facing message.
func validateForm(form any) error {
	err := formValidator.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	return errors.New(fieldMessage(fieldErrs[0]))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fe.Field() + " is required"
	case "datetime":
		return fe.Field() + " must be a date (YYYY-MM-DD)"
	case "len":
		return fmt.Sprintf("%s must be %s characters", fe.Field(), fe.Param())
	}
	return fe.Field() + " is invalid"
}
