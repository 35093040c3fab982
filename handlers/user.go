package handlers

import (
	"net/http"

	"github.com/LovationAdmin/finance-api/middleware"
	"github.com/LovationAdmin/finance-api/models"
	"github.com/LovationAdmin/finance-api/services"
	"github.com/LovationAdmin/finance-api/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler manages account settings of the authenticated user.
type UserHandler struct {
	Auth *services.AuthService
}

// Setup2FA generates a new TOTP secret. 2FA stays off until Verify2FA confirms a code.
func (h *UserHandler) Setup2FA(c *gin.Context) {
	userID := middleware.GetUserID(c)

	resp, err := h.Auth.SetupTOTP(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to setup 2FA")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Verify2FA(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.VerifyTOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Auth.VerifyTOTP(c.Request.Context(), userID, req.Code); err != nil {
		utils.LogAuthAction("2fa-enable", middleware.GetEmail(c), false)
		respondError(c, err, "Failed to enable 2FA")
		return
	}

	utils.LogAuthAction("2fa-enable", middleware.GetEmail(c), true)
	c.JSON(http.StatusOK, gin.H{"message": "2FA enabled"})
}

func (h *UserHandler) Disable2FA(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.DisableTOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Auth.DisableTOTP(c.Request.Context(), userID, req.Password, req.Code); err != nil {
		utils.LogAuthAction("2fa-disable", middleware.GetEmail(c), false)
		respondError(c, err, "Failed to disable 2FA")
		return
	}

	utils.LogAuthAction("2fa-disable", middleware.GetEmail(c), true)
	c.JSON(http.StatusOK, gin.H{"message": "2FA disabled"})
}
