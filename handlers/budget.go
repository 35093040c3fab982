package handlers

import (
	"net/http"

	"github.com/LovationAdmin/finance-api/models"
	"github.com/LovationAdmin/finance-api/services"
	"github.com/LovationAdmin/finance-api/utils"

	"github.com/gin-gonic/gin"
)

type BudgetHandler struct {
	Budgets  *services.BudgetService
	Notifier Notifier
}

// GetBudgets lists budgets with used and remaining, optionally narrowed to a month and year.
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID, ok := resolveUserID(c, "")
	if !ok {
		return
	}

	budgets, err := h.Budgets.List(c.Request.Context(), services.BudgetFilter{
		UserID: userID,
		Month:  queryInt(c, "month"),
		Year:   queryInt(c, "year"),
	})
	if err != nil {
		respondError(c, err, "Failed to fetch budgets")
		return
	}
	c.JSON(http.StatusOK, budgets)
}

func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req models.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		return
	}

	budget, err := h.Budgets.Create(c.Request.Context(), services.BudgetInput{
		UserID:     userID,
		CategoryID: req.CategoryID,
		Amount:     *req.Amount,
		Month:      req.Month,
		Year:       req.Year,
	})
	if err != nil {
		respondError(c, err, "Failed to create budget")
		return
	}

	utils.LogAmountChange("Budget", "created", budget.ID, userID, budget.Amount)
	notify(h.Notifier, userID, "budget", "created")
	c.JSON(http.StatusCreated, gin.H{"message": "Budget created", "data": budget})
}

func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	var req models.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	budget, err := h.Budgets.Update(c.Request.Context(), req.ID, services.BudgetInput{
		CategoryID: req.CategoryID,
		Amount:     *req.Amount,
		Month:      req.Month,
		Year:       req.Year,
	})
	if err != nil {
		respondError(c, err, "Failed to update budget")
		return
	}

	utils.LogAmountChange("Budget", "updated", budget.ID, budget.UserID, budget.Amount)
	notify(h.Notifier, budget.UserID, "budget", "updated")
	c.JSON(http.StatusOK, gin.H{"message": "Budget updated", "data": budget})
}

func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	// Owner lookup only feeds the change signal; a missing budget still fails in Delete.
	var owner string
	if b, err := h.Budgets.GetByID(ctx, id); err == nil {
		owner = b.UserID
	}

	if err := h.Budgets.Delete(ctx, id); err != nil {
		respondError(c, err, "Failed to delete budget")
		return
	}

	utils.LogFinanceAction("Budget", "deleted", id, owner)
	notify(h.Notifier, owner, "budget", "deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted"})
}
