package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCategories_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/categories", r.URL.Path)
		assert.Contains(t, r.Header.Get("User-Agent"), "finctl/")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Groceries","description":"Food"},{"id":2,"name":"Rent","description":""}]`))
	}))
	defer server.Close()

	c := New(server.URL+"/api/", server.Client())
	categories, err := c.ListCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, uint(1), categories[0].ID)
	assert.Equal(t, "Groceries", categories[0].Name)
}

func TestCreateCategory_ValidatesBeforeRequest(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	_, err := c.CreateCategory(context.Background(), CategoryForm{Name: "  "})

	require.Error(t, err)
	assert.Equal(t, "Name is required", err.Error())
	assert.False(t, called, "no request should be made for an invalid form")
}

func TestCreateCounterparty_SendsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ACME", body["name"])
		assert.Equal(t, "REF-1", body["reference"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":5,"name":"ACME","reference":"REF-1","description":""}`))
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	cp, err := c.CreateCounterparty(context.Background(), CounterpartyForm{Name: "ACME", Reference: "REF-1"})

	require.NoError(t, err)
	assert.Equal(t, uint(5), cp.ID)
}

func TestUpdateCategory_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/categories/42", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"CATEGORY_NOT_FOUND","message":"Category not found"}}`))
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	_, err := c.UpdateCategory(context.Background(), 42, CategoryForm{Name: "Food"})

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "CATEGORY_NOT_FOUND", apiErr.Code)
	assert.Contains(t, err.Error(), "unexpected status 404: Category not found")
}

func TestDeleteCounterparty_ReturnsMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		_, _ = w.Write([]byte(`{"message":"Counterparty deleted successfully"}`))
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	msg, err := c.DeleteCounterparty(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, "Counterparty deleted successfully", msg)
}

func TestCreateTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2024-03-01", body["transaction_date"])
		assert.Equal(t, "-42.1", body["amount"])
		assert.NotContains(t, body, "value_date")

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":9,"amount":"-42.1","currency":"EUR"}`))
	}))
	defer server.Close()

	amount := decimal.RequireFromString("-42.10")
	c := New(server.URL, server.Client())
	tx, err := c.CreateTransaction(context.Background(), TransactionForm{TransactionDate: "2024-03-01", Amount: &amount})

	require.NoError(t, err)
	assert.Equal(t, uint(9), tx.ID)
	assert.True(t, tx.Amount.Equal(amount))
}

func TestTransactionForm_Validate(t *testing.T) {
	amount := decimal.NewFromInt(1)

	assert.EqualError(t, TransactionForm{Amount: &amount}.Validate(), "Transaction date is required")
	assert.EqualError(t, TransactionForm{TransactionDate: "2024-03-01"}.Validate(), "Amount is required")
	assert.EqualError(t, TransactionForm{TransactionDate: "03/01/2024", Amount: &amount}.Validate(), "Transaction date must be a date (YYYY-MM-DD)")
	assert.NoError(t, TransactionForm{TransactionDate: "2024-03-01", Amount: &amount, Currency: "USD"}.Validate())
}

func TestSystemInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"backend":{"version":"1.0.0","status":"Online","environment":"development"}}`))
	}))
	defer server.Close()

	info, err := New(server.URL, server.Client()).SystemInfo(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Online", info.Status)
	assert.Equal(t, "development", info.Environment)
}

func TestSendLog_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	err := New(server.URL, server.Client()).SendLog(context.Background(), LogEntry{Level: "info", Message: "hi"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 429")
}

func TestSendLog_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	err := New(url, nil).SendLog(context.Background(), LogEntry{Level: "info", Message: "hi"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending log")
}
