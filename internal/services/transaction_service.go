package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "finmanager/internal/errors"
	"finmanager/internal/models"
)

// DefaultCurrency is used when a transaction is created without a currency.
const DefaultCurrency = "EUR"

// transactionViewColumns selects a transaction together with the names of
// its category and counterparty.
const transactionViewColumns = `t.id, t.transaction_date, t.value_date, t.amount, t.currency,
	t.description, t.reference,
	t.category_id, c.name AS category_name,
	t.counterparty_id, cp.name AS counterparty_name,
	t.created_at, t.updated_at`

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// ListTransactions returns every transaction, newest first, with category and
// counterparty names resolved.
func (s *transactionService) ListTransactions() ([]models.TransactionView, error) {
	views := make([]models.TransactionView, 0)
	err := s.db.Table("transactions AS t").
		Select(transactionViewColumns).
		Joins("LEFT JOIN categories c ON t.category_id = c.id").
		Joins("LEFT JOIN counterparties cp ON t.counterparty_id = cp.id").
		Order("t.transaction_date DESC, t.value_date DESC NULLS LAST, t.id DESC").
		Scan(&views).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return views, nil
}

// CreateTransaction records a new transaction. Referenced category and
// counterparty must exist.
func (s *transactionService) CreateTransaction(input CreateTransactionInput) (*models.Transaction, error) {
	if input.TransactionDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction date is required")
	}

	if input.CategoryID != nil {
		if err := s.exists(&models.Category{}, *input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if input.CounterpartyID != nil {
		if err := s.exists(&models.Counterparty{}, *input.CounterpartyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCounterpartyNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	tx := &models.Transaction{
		TransactionDate: input.TransactionDate,
		ValueDate:       input.ValueDate,
		Amount:          input.Amount,
		Currency:        currency,
		Description:     input.Description,
		Reference:       input.Reference,
		CategoryID:      input.CategoryID,
		CounterpartyID:  input.CounterpartyID,
	}
	if err := s.db.Create(tx).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tx, nil
}

func (s *transactionService) exists(model interface{}, id uint) error {
	return s.db.Model(model).Select("id").Where("id = ?", id).Take(model).Error
}
