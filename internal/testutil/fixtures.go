package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finmanager/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	return CreateTestCategoryNamed(t, db, fmt.Sprintf("Test Category %d", nextID()))
}

// CreateTestCategoryNamed creates a category with the given name.
func CreateTestCategoryNamed(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestCounterparty creates a counterparty with a unique name and reference.
func CreateTestCounterparty(t *testing.T, db *gorm.DB) *models.Counterparty {
	t.Helper()

	n := nextID()
	counterparty := &models.Counterparty{
		Name:      fmt.Sprintf("Test Counterparty %d", n),
		Reference: fmt.Sprintf("REF-%d", n),
	}
	if err := db.Create(counterparty).Error; err != nil {
		t.Fatalf("failed to create test counterparty: %v", err)
	}
	return counterparty
}

// CreateTestTransaction creates a transaction dated on the given day with the
// given amount; categoryID and counterpartyID may be nil.
func CreateTestTransaction(t *testing.T, db *gorm.DB, date time.Time, amount string, categoryID, counterpartyID *uint) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		TransactionDate: date,
		Amount:          decimal.RequireFromString(amount),
		Currency:        "EUR",
		Description:     fmt.Sprintf("Test Transaction %d", nextID()),
		CategoryID:      categoryID,
		CounterpartyID:  counterpartyID,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
