package services

import (
	"time"

	"github.com/shopspring/decimal"

	"finmanager/internal/models"
)

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	ListCategories() ([]models.Category, error)
	GetCategoryByID(categoryID uint) (*models.Category, error)
	CreateCategory(name, description string) (*models.Category, error)
	UpdateCategory(categoryID uint, name, description string) (*models.Category, error)
	DeleteCategory(categoryID uint) error
}

// CounterpartyServicer defines the contract for counterparty-related business logic.
type CounterpartyServicer interface {
	ListCounterparties() ([]models.Counterparty, error)
	GetCounterpartyByID(counterpartyID uint) (*models.Counterparty, error)
	CreateCounterparty(name, reference, description string) (*models.Counterparty, error)
	UpdateCounterparty(counterpartyID uint, name, reference, description string) (*models.Counterparty, error)
	DeleteCounterparty(counterpartyID uint) error
}

// CreateTransactionInput holds the editable fields of a new transaction.
type CreateTransactionInput struct {
	TransactionDate time.Time
	ValueDate       *time.Time
	Amount          decimal.Decimal
	Currency        string
	Description     string
	Reference       string
	CategoryID      *uint
	CounterpartyID  *uint
}

// TransactionServicer defines the contract for transaction-related business logic.
// Transactions are append-only through the API.
type TransactionServicer interface {
	ListTransactions() ([]models.TransactionView, error)
	CreateTransaction(input CreateTransactionInput) (*models.Transaction, error)
}
