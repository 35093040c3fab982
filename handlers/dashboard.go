package handlers

import (
	"net/http"

	"github.com/LovationAdmin/finance-api/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	Dashboard *services.DashboardService
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := resolveUserID(c, "")
	if !ok {
		return
	}

	dashboard, err := h.Dashboard.Get(c.Request.Context(), userID, periodFromQuery(c))
	if err != nil {
		respondError(c, err, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
