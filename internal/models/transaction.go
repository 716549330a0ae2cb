package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a financial transaction. The sign of Amount
// distinguishes credits (positive) from debits (negative).
type Transaction struct {
	Base
	TransactionDate time.Time       `gorm:"type:date;not null" json:"transaction_date"`
	ValueDate       *time.Time      `gorm:"type:date" json:"value_date"`
	Amount          decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Currency        string          `gorm:"size:3;not null;default:EUR" json:"currency"`
	Description     string          `gorm:"not null;default:''" json:"description"`
	Reference       string          `gorm:"not null;default:''" json:"reference"`
	CategoryID      *uint           `json:"category_id"`
	CounterpartyID  *uint           `json:"counterparty_id"`

	// Relationships. Deleting a category or counterparty keeps the
	// transaction and clears the reference.
	Category     *Category     `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
	Counterparty *Counterparty `gorm:"foreignKey:CounterpartyID;constraint:OnDelete:SET NULL" json:"-"`
}

// TransactionView is the list shape of a transaction, with the category and
// counterparty names resolved.
type TransactionView struct {
	ID               uint            `json:"id"`
	TransactionDate  time.Time       `json:"transaction_date"`
	ValueDate        *time.Time      `json:"value_date"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Description      string          `json:"description"`
	Reference        string          `json:"reference"`
	CategoryID       *uint           `json:"category_id"`
	CategoryName     *string         `json:"category_name"`
	CounterpartyID   *uint           `json:"counterparty_id"`
	CounterpartyName *string         `json:"counterparty_name"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// SearchFields returns the text fields matched by client-side search.
func (v TransactionView) SearchFields() []string {
	fields := []string{v.Description, v.Reference, v.Currency}
	if v.CategoryName != nil {
		fields = append(fields, *v.CategoryName)
	}
	if v.CounterpartyName != nil {
		fields = append(fields, *v.CounterpartyName)
	}
	return fields
}
