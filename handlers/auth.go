package handlers

import (
	"errors"
	"net/http"

	"github.com/LovationAdmin/finance-api/middleware"
	"github.com/LovationAdmin/finance-api/models"
	"github.com/LovationAdmin/finance-api/services"
	"github.com/LovationAdmin/finance-api/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.Auth.Signup(c.Request.Context(), req)
	if err != nil {
		utils.LogAuthAction("signup", req.Email, false)
		respondError(c, err, "Failed to create user")
		return
	}

	utils.LogAuthAction("signup", req.Email, true)
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.Auth.Login(c.Request.Context(), req)
	if errors.Is(err, services.ErrTOTPRequired) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "requires_2fa": true})
		return
	}
	if err != nil {
		utils.LogAuthAction("login", req.Email, false)
		respondError(c, err, "Login failed")
		return
	}

	utils.LogAuthAction("login", req.Email, true)
	c.JSON(http.StatusOK, resp)
}

// GetSession answers null for anonymous callers, mirroring an auth provider's session endpoint.
func (h *AuthHandler) GetSession(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusOK, nil)
		return
	}

	expiresAt, _ := middleware.GetTokenExpiry(c)
	session, err := h.Auth.Session(c.Request.Context(), userID, expiresAt)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		respondError(c, err, "Failed to load session")
		return
	}
	c.JSON(http.StatusOK, session)
}
