package handlers

import (
	"net/http"

	"github.com/LovationAdmin/finance-api/models"
	"github.com/LovationAdmin/finance-api/services"
	"github.com/LovationAdmin/finance-api/utils"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	Categories *services.CategoryService
	Notifier   Notifier
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	userID, ok := resolveUserID(c, "")
	if !ok {
		return
	}

	categories, err := h.Categories.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch transaction categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		return
	}
	req.UserID = userID

	category, err := h.Categories.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create transaction category")
		return
	}

	utils.LogFinanceAction("Category", "created", category.ID, category.UserID)
	notify(h.Notifier, category.UserID, "category", "created")
	c.JSON(http.StatusCreated, gin.H{"message": "Transaction category created", "data": category})
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		return
	}
	req.UserID = userID

	category, err := h.Categories.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to update transaction category")
		return
	}

	utils.LogFinanceAction("Category", "updated", category.ID, category.UserID)
	notify(h.Notifier, category.UserID, "category", "updated")
	c.JSON(http.StatusOK, gin.H{"message": "Transaction category updated", "data": category})
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var owner string
	if cat, err := h.Categories.GetByID(ctx, id); err == nil {
		owner = cat.UserID
	}

	if err := h.Categories.Delete(ctx, id); err != nil {
		respondError(c, err, "Failed to delete transaction category")
		return
	}

	utils.LogFinanceAction("Category", "deleted", id, owner)
	notify(h.Notifier, owner, "category", "deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Transaction category deleted"})
}
