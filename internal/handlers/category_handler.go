package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finmanager/internal/logger"
	"finmanager/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
	log             *logger.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, log: log}
}

// CategoryRequest represents the request payload for creating or replacing a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=255"`
	Description string `json:"description" binding:"max=1000"`
}

// ListCategories handles the retrieval of all categories
// @Summary     List categories
// @Description Get all categories ordered by name
// @Tags        categories
// @Produce     json
// @Success     200 {array}  models.Category "List of categories"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories()
	if err != nil {
		respondWithError(c, h.log, err, "Failed to fetch categories")
		return
	}

	h.log.Info("Categories fetched successfully", "count", len(categories))
	c.JSON(http.StatusOK, categories)
}

// GetCategoryByID handles the retrieval of a specific category
// @Summary     Get category by ID
// @Tags        categories
// @Produce     json
// @Param       id path int true "Category ID"
// @Success     200 {object} models.Category "Category details"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, h.log, err, "Failed to fetch category")
		return
	}

	category, err := h.categoryService.GetCategoryByID(categoryID)
	if err != nil {
		respondWithError(c, h.log, err, "Failed to fetch category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       request body CategoryRequest true "Category details"
// @Success     201 {object} models.Category "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, h.log, invalidInput(err), "Failed to create category")
		return
	}

	category, err := h.categoryService.CreateCategory(req.Name, req.Description)
	if err != nil {
		respondWithError(c, h.log, err, "Failed to create category")
		return
	}

	h.log.Info("Category created successfully", "id", category.ID)
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles replacing a category's editable fields
// @Summary     Update category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       id path int true "Category ID"
// @Param       request body CategoryRequest true "Updated category details"
// @Success     200 {object} models.Category "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input or category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, h.log, err, "Failed to update category")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, h.log, invalidInput(err), "Failed to update category")
		return
	}

	category, err := h.categoryService.UpdateCategory(categoryID, req.Name, req.Description)
	if err != nil {
		respondWithError(c, h.log, err, "Failed to update category")
		return
	}

	h.log.Info("Category updated successfully", "id", category.ID)
	c.JSON(http.StatusOK, category)
}

// DeleteCategory handles deleting a category
// @Summary     Delete category
// @Description Delete a category. Transactions that reference it keep a null category.
// @Tags        categories
// @Produce     json
// @Param       id path int true "Category ID"
// @Success     200 {object} MessageResponse "Category deleted"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, h.log, err, "Failed to delete category")
		return
	}

	if err := h.categoryService.DeleteCategory(categoryID); err != nil {
		respondWithError(c, h.log, err, "Failed to delete category")
		return
	}

	h.log.Info("Category deleted successfully", "id", categoryID)
	c.JSON(http.StatusOK, MessageResponse{Message: "Category deleted successfully"})
}
