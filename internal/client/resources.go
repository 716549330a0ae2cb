package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"finmanager/internal/models"
)

type messageResponse struct {
	Message string `json:"message"`
}

// ListCategories fetches every category ordered by name.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &out); err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}
	return out, nil
}

// CreateCategory validates and submits a new category.
func (c *Client) CreateCategory(ctx context.Context, form CategoryForm) (*models.Category, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	var out models.Category
	if err := c.do(ctx, http.MethodPost, "/categories", form, &out); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	return &out, nil
}

// UpdateCategory validates and replaces the editable fields of a category.
func (c *Client) UpdateCategory(ctx context.Context, id uint, form CategoryForm) (*models.Category, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	var out models.Category
	if err := c.do(ctx, http.MethodPut, "/categories/"+idPath(id), form, &out); err != nil {
		return nil, fmt.Errorf("updating category: %w", err)
	}
	return &out, nil
}

// DeleteCategory deletes a category and returns the server's confirmation.
func (c *Client) DeleteCategory(ctx context.Context, id uint) (string, error) {
	var out messageResponse
	if err := c.do(ctx, http.MethodDelete, "/categories/"+idPath(id), nil, &out); err != nil {
		return "", fmt.Errorf("deleting category: %w", err)
	}
	return out.Message, nil
}

// ListCounterparties fetches every counterparty ordered by name.
func (c *Client) ListCounterparties(ctx context.Context) ([]models.Counterparty, error) {
	var out []models.Counterparty
	if err := c.do(ctx, http.MethodGet, "/counterparties", nil, &out); err != nil {
		return nil, fmt.Errorf("fetching counterparties: %w", err)
	}
	return out, nil
}

// CreateCounterparty validates and submits a new counterparty.
func (c *Client) CreateCounterparty(ctx context.Context, form CounterpartyForm) (*models.Counterparty, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	var out models.Counterparty
	if err := c.do(ctx, http.MethodPost, "/counterparties", form, &out); err != nil {
		return nil, fmt.Errorf("creating counterparty: %w", err)
	}
	return &out, nil
}

// UpdateCounterparty validates and replaces the editable fields of a counterparty.
func (c *Client) UpdateCounterparty(ctx context.Context, id uint, form CounterpartyForm) (*models.Counterparty, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	var out models.Counterparty
	if err := c.do(ctx, http.MethodPut, "/counterparties/"+idPath(id), form, &out); err != nil {
		return nil, fmt.Errorf("updating counterparty: %w", err)
	}
	return &out, nil
}

// DeleteCounterparty deletes a counterparty and returns the server's confirmation.
func (c *Client) DeleteCounterparty(ctx context.Context, id uint) (string, error) {
	var out messageResponse
	if err := c.do(ctx, http.MethodDelete, "/counterparties/"+idPath(id), nil, &out); err != nil {
		return "", fmt.Errorf("deleting counterparty: %w", err)
	}
	return out.Message, nil
}

// ListTransactions fetches every transaction, newest first.
func (c *Client) ListTransactions(ctx context.Context) ([]models.TransactionView, error) {
	var out []models.TransactionView
	if err := c.do(ctx, http.MethodGet, "/transactions", nil, &out); err != nil {
		return nil, fmt.Errorf("fetching transactions: %w", err)
	}
	return out, nil
}

// CreateTransaction validates and records a new transaction.
func (c *Client) CreateTransaction(ctx context.Context, form TransactionForm) (*models.Transaction, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	var out models.Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", form, &out); err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}
	return &out, nil
}

// BackendInfo describes the running backend.
type BackendInfo struct {
	Version     string `json:"version"`
	Status      string `json:"status"`
	Environment string `json:"environment"`
}

// SystemInfo fetches the backend's version, status and environment.
func (c *Client) SystemInfo(ctx context.Context) (*BackendInfo, error) {
	var out struct {
		Backend BackendInfo `json:"backend"`
	}
	if err := c.do(ctx, http.MethodGet, "/system/info", nil, &out); err != nil {
		return nil, fmt.Errorf("fetching system info: %w", err)
	}
	return &out.Backend, nil
}

// LogEntry is a client log event shipped to the backend.
type LogEntry struct {
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// SendLog posts a log entry to the backend's log ingestion endpoint.
func (c *Client) SendLog(ctx context.Context, entry LogEntry) error {
	if err := c.do(ctx, http.MethodPost, "/system/logs", entry, nil); err != nil {
		return fmt.Errorf("sending log: %w", err)
	}
	return nil
}

func idPath(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
