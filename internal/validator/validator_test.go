package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type sample struct {
	Name     string `binding:"required,notblank"`
	Currency string `binding:"omitempty,currency"`
	Date     string `binding:"omitempty,datetime=2006-01-02"`
}

func TestRegister(t *testing.T) {
	Register()

	tests := []struct {
		name    string
		in      sample
		wantErr bool
	}{
		{"valid", sample{Name: "Groceries", Currency: "EUR", Date: "2024-03-01"}, false},
		{"lowercase currency", sample{Name: "Rent", Currency: "usd"}, false},
		{"blank name", sample{Name: "   "}, true},
		{"unknown currency", sample{Name: "Rent", Currency: "XYZ"}, true},
		{"bad date", sample{Name: "Rent", Date: "01/03/2024"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
