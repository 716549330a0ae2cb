package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finmanager/internal/logger"
	"finmanager/internal/services"
)

// CounterpartyHandler handles counterparty-related requests
type CounterpartyHandler struct {
	counterpartyService services.CounterpartyServicer
	log             *logger.Logger
}

// NewCounterpartyHandler creates a new CounterpartyHandler
func NewCounterpartyHandler(counterpartyService services.CounterpartyServicer, log *logger.Logger) *CounterpartyHandler {
	return &CounterpartyHandler{counterpartyService: counterpartyService, log: log}
}

// CounterpartyRequest represents the request payload for creating or replacing a counterparty.
// Reference is free text such as an IBAN or customer number.
type CounterpartyRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=255"`
	Reference   string `json:"reference" binding:"max=255" example:"DE89370400440532013000"`
	Description string `json:"description" binding:"max=1000"`
}

// ListCounterparties handles the retrieval of all counterparties
// @Summary     List counterparties
// @Description Get all counterparties ordered by name
// @Tags        counterparties
// @Produce     json
// @Success     200 {array}  models.Counterparty "List of counterparties"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /counterparties [get]
func (h *CounterpartyHandler) ListCounterparties(c *gin.Context) {
	counterparties, err := h.counterpartyService.ListCounterparties()
	if err != nil {
		respondWithError(c, h.log, err, "Failed to fetch counterparties")
		return
	}

	h.log.Info("Counterparties fetched successfully", "count", len(counterparties))
	c.JSON(http.StatusOK, counterparties)
}

// GetCounterpartyByID handles the retrieval of a specific counterparty
// @Summary     Get counterparty by ID
// @Tags        counterparties
// @Produce     json
// @Param       id path int true "Counterparty ID"
// @Success     200 {object} models.Counterparty "Counterparty details"
// @Failure     400 {object} ErrorResponse "Invalid counterparty ID"
// @Failure     404 {object} ErrorResponse "Counterparty not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /counterparties/{id} [get]
func (h *CounterpartyHandler) GetCounterpartyByID(c *gin.Context) {
	counterpartyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, h.log, err, "Failed to fetch counterparty")
		return
	}

	counterparty, err := h.counterpartyService.GetCounterpartyByID(counterpartyID)
	if err != nil {
		respondWithError(c, h.log, err, "Failed to fetch counterparty")
		return
	}

	c.JSON(http.StatusOK, counterparty)
}

// CreateCounterparty handles the creation of a new counterparty
// @Summary     Create a counterparty
// @Tags        counterparties
// @Accept      json
// @Produce     json
// @Param       request body CounterpartyRequest true "Counterparty details"
// @Success     201 {object} models.Counterparty "Counterparty created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /counterparties [post]
func (h *CounterpartyHandler) CreateCounterparty(c *gin.Context) {
	var req CounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, h.log, invalidInput(err), "Failed to create counterparty")
		return
	}

	counterparty, err := h.counterpartyService.CreateCounterparty(req.Name, req.Reference, req.Description)
	if err != nil {
		respondWithError(c, h.log, err, "Failed to create counterparty")
		return
	}

	h.log.Info("Counterparty created successfully", "id", counterparty.ID)
	c.JSON(http.StatusCreated, counterparty)
}

// UpdateCounterparty handles replacing a counterparty's editable fields
// @Summary     Update counterparty
// @Tags        counterparties
// @Accept      json
// @Produce     json
// @Param       id path int true "Counterparty ID"
// @Param       request body CounterpartyRequest true "Updated counterparty details"
// @Success     200 {object} models.Counterparty "Updated counterparty"
// @Failure     400 {object} ErrorResponse "Invalid input or counterparty ID"
// @Failure     404 {object} ErrorResponse "Counterparty not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /counterparties/{id} [put]
func (h *CounterpartyHandler) UpdateCounterparty(c *gin.Context) {
	counterpartyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, h.log, err, "Failed to update counterparty")
		return
	}

	var req CounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, h.log, invalidInput(err), "Failed to update counterparty")
		return
	}

	counterparty, err := h.counterpartyService.UpdateCounterparty(counterpartyID, req.Name, req.Reference, req.Description)
	if err != nil {
		respondWithError(c, h.log, err, "Failed to update counterparty")
		return
	}

	h.log.Info("Counterparty updated successfully", "id", counterparty.ID)
	c.JSON(http.StatusOK, counterparty)
}

// DeleteCounterparty handles deleting a counterparty
// @Summary     Delete counterparty
// @Description Delete a counterparty. Transactions that reference it keep a null counterparty.
// @Tags        counterparties
// @Produce     json
// @Param       id path int true "Counterparty ID"
// @Success     200 {object} MessageResponse "Counterparty deleted"
// @Failure     400 {object} ErrorResponse "Invalid counterparty ID"
// @Failure     404 {object} ErrorResponse "Counterparty not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /counterparties/{id} [delete]
func (h *CounterpartyHandler) DeleteCounterparty(c *gin.Context) {
	counterpartyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, h.log, err, "Failed to delete counterparty")
		return
	}

	if err := h.counterpartyService.DeleteCounterparty(counterpartyID); err != nil {
		respondWithError(c, h.log, err, "Failed to delete counterparty")
		return
	}

	h.log.Info("Counterparty deleted successfully", "id", counterpartyID)
	c.JSON(http.StatusOK, MessageResponse{Message: "Counterparty deleted successfully"})
}
