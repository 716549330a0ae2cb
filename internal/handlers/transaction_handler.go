package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finmanager/internal/logger"
	"finmanager/internal/services"
)

// dateLayout is the wire format of transaction and value dates.
const dateLayout = "2006-01-02"

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	transactionService services.TransactionServicer
	log                *logger.Logger
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService services.TransactionServicer, log *logger.Logger) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, log: log}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
// Amount accepts a JSON number or a decimal string; negative values are debits.
type CreateTransactionRequest struct {
	TransactionDate string           `json:"transaction_date" binding:"required,datetime=2006-01-02" example:"2024-03-01"`
	ValueDate       string           `json:"value_date" binding:"omitempty,datetime=2006-01-02" example:"2024-03-02"`
	Amount          *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string" example:"-42.10"`
	Currency        string           `json:"currency" binding:"omitempty,currency" example:"EUR"`
	Description     string           `json:"description" binding:"max=1000"`
	Reference       string           `json:"reference" binding:"max=255"`
	CategoryID      *uint            `json:"category_id"`
	CounterpartyID  *uint            `json:"counterparty_id"`
}

// ListTransactions handles the retrieval of all transactions
// @Summary     List transactions
// @Description Get all transactions, newest first, with category and counterparty names
// @Tags        transactions
// @Produce     json
// @Success     200 {array}  models.TransactionView "List of transactions"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	transactions, err := h.transactionService.ListTransactions()
	if err != nil {
		respondWithError(c, h.log, err, "Failed to fetch transactions")
		return
	}

	h.log.Info("Transactions fetched successfully", "count", len(transactions))
	c.JSON(http.StatusOK, transactions)
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category or counterparty not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, h.log, invalidInput(err), "Failed to create transaction")
		return
	}

	// Layouts were checked during binding.
	transactionDate, _ := time.Parse(dateLayout, req.TransactionDate)
	var valueDate *time.Time
	if req.ValueDate != "" {
		d, _ := time.Parse(dateLayout, req.ValueDate)
		valueDate = &d
	}

	transaction, err := h.transactionService.CreateTransaction(services.CreateTransactionInput{
		TransactionDate: transactionDate,
		ValueDate:       valueDate,
		Amount:          *req.Amount,
		Currency:        req.Currency,
		Description:     req.Description,
		Reference:       req.Reference,
		CategoryID:      req.CategoryID,
		CounterpartyID:  req.CounterpartyID,
	})
	if err != nil {
		respondWithError(c, h.log, err, "Failed to create transaction")
		return
	}

	h.log.Info("Transaction created successfully", "id", transaction.ID)
	c.JSON(http.StatusCreated, transaction)
}
