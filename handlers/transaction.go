package handlers

import (
	"net/http"

	"github.com/LovationAdmin/finance-api/models"
	"github.com/LovationAdmin/finance-api/services"
	"github.com/LovationAdmin/finance-api/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type TransactionHandler struct {
	Transactions *services.TransactionService
	Export       *services.ExportService
	Notifier     Notifier
}

// GetTransactions supports categoryId, type, startDate (inclusive) and endDate (inclusive) filters.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	userID, ok := resolveUserID(c, "")
	if !ok {
		return
	}

	f := services.TransactionFilter{UserID: userID}
	if categoryID := c.Query("categoryId"); categoryID != "" {
		f.CategoryID = &categoryID
	}
	if kind := models.TransactionType(c.Query("type")); kind != "" {
		if !kind.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type, must be INCOME or EXPENSE"})
			return
		}
		f.Type = &kind
	}
	if s := c.Query("startDate"); s != "" {
		start, err := utils.ParseDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate"})
			return
		}
		f.From = &start
	}
	if s := c.Query("endDate"); s != "" {
		end, err := utils.ParseDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate"})
			return
		}
		f.Through = &end
	}

	transactions, err := h.Transactions.List(c.Request.Context(), f, 0)
	if err != nil {
		respondError(c, err, "Failed to fetch transactions")
		return
	}
	c.JSON(http.StatusOK, transactions)
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		return
	}
	req.UserID = userID

	transaction, err := h.Transactions.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create transaction")
		return
	}

	utils.LogAmountChange("Transaction", "created", transaction.ID, transaction.UserID, transaction.Amount)
	notify(h.Notifier, transaction.UserID, "transaction", "created")
	c.JSON(http.StatusCreated, transaction)
}

func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	var req models.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing id"})
		return
	}

	transaction, err := h.Transactions.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to update transaction")
		return
	}

	utils.LogAmountChange("Transaction", "updated", transaction.ID, transaction.UserID, transaction.Amount)
	notify(h.Notifier, transaction.UserID, "transaction", "updated")
	c.JSON(http.StatusOK, transaction)
}

func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var owner string
	if t, err := h.Transactions.GetByID(ctx, id); err == nil {
		owner = t.UserID
	}

	if err := h.Transactions.Delete(ctx, id); err != nil {
		respondError(c, err, "Failed to delete transaction")
		return
	}

	utils.LogFinanceAction("Transaction", "deleted", id, owner)
	notify(h.Notifier, owner, "transaction", "deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

// ExportTransactions streams the period's transactions as an XLSX attachment.
func (h *TransactionHandler) ExportTransactions(c *gin.Context) {
	userID, ok := resolveUserID(c, "")
	if !ok {
		return
	}

	p := periodFromQuery(c)
	buf, err := h.Export.Workbook(c.Request.Context(), userID, p)
	if err != nil {
		respondError(c, err, "Failed to export transactions")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+h.Export.Filename(p)+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
