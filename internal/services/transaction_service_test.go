package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finmanager/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	t.Run("valid with references", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		cat := testutil.CreateTestCategory(t, db)
		cp := testutil.CreateTestCounterparty(t, db)
		valueDate := testutil.Day(2024, time.March, 4)

		tx, err := svc.CreateTransaction(CreateTransactionInput{
			TransactionDate: testutil.Day(2024, time.March, 2),
			ValueDate:       &valueDate,
			Amount:          decimal.RequireFromString("-42.10"),
			Currency:        "usd",
			Description:     "Weekly shop",
			Reference:       "POS 1234",
			CategoryID:      &cat.ID,
			CounterpartyID:  &cp.ID,
		})
		testutil.AssertNoError(t, err)

		if tx.ID == 0 {
			t.Fatal("expected non-zero ID")
		}
		testutil.AssertAmount(t, tx.Amount, "-42.1")
		testutil.AssertSameDay(t, tx.TransactionDate, testutil.Day(2024, time.March, 2))
		if tx.ValueDate == nil {
			t.Fatal("expected value date to be kept")
		}
		testutil.AssertSameDay(t, *tx.ValueDate, valueDate)
		if tx.Currency != "USD" {
			t.Errorf("expected currency normalized to USD, got %s", tx.Currency)
		}
	})

	t.Run("defaults currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		tx, err := svc.CreateTransaction(CreateTransactionInput{
			TransactionDate: testutil.Day(2024, time.March, 2),
			Amount:          decimal.NewFromInt(5),
		})
		testutil.AssertNoError(t, err)
		if tx.Currency != DefaultCurrency {
			t.Errorf("expected %s, got %s", DefaultCurrency, tx.Currency)
		}
	})

	t.Run("missing date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		_, err := svc.CreateTransaction(CreateTransactionInput{Amount: decimal.NewFromInt(1)})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		missing := uint(999)

		_, err := svc.CreateTransaction(CreateTransactionInput{
			TransactionDate: testutil.Day(2024, time.March, 2),
			Amount:          decimal.NewFromInt(1),
			CategoryID:      &missing,
		})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("unknown counterparty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		missing := uint(999)

		_, err := svc.CreateTransaction(CreateTransactionInput{
			TransactionDate: testutil.Day(2024, time.March, 2),
			Amount:          decimal.NewFromInt(1),
			CounterpartyID:  &missing,
		})
		testutil.AssertAppError(t, err, "COUNTERPARTY_NOT_FOUND")
	})
}

func TestListTransactions(t *testing.T) {
	t.Run("joins names and orders newest first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		cat := testutil.CreateTestCategoryNamed(t, db, "Groceries")
		cp := testutil.CreateTestCounterparty(t, db)

		older := testutil.CreateTestTransaction(t, db, testutil.Day(2024, time.January, 10), "-5", &cat.ID, nil)
		newer := testutil.CreateTestTransaction(t, db, testutil.Day(2024, time.February, 10), "1200", nil, &cp.ID)

		views, err := svc.ListTransactions()
		testutil.AssertNoError(t, err)
		if len(views) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(views))
		}
		if views[0].ID != newer.ID || views[1].ID != older.ID {
			t.Errorf("expected newest first, got ids %d, %d", views[0].ID, views[1].ID)
		}
		if views[1].CategoryName == nil || *views[1].CategoryName != "Groceries" {
			t.Errorf("expected category name Groceries, got %v", views[1].CategoryName)
		}
		if views[1].CounterpartyName != nil {
			t.Errorf("expected no counterparty name, got %v", *views[1].CounterpartyName)
		}
		if views[0].CounterpartyName == nil || *views[0].CounterpartyName != cp.Name {
			t.Errorf("expected counterparty name %s, got %v", cp.Name, views[0].CounterpartyName)
		}
		testutil.AssertAmount(t, views[0].Amount, "1200")
	})

	t.Run("empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		views, err := svc.ListTransactions()
		testutil.AssertNoError(t, err)
		if views == nil || len(views) != 0 {
			t.Errorf("expected empty slice, got %#v", views)
		}
	})
}
