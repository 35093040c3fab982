package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/LovationAdmin/finance-api/middleware"
	"github.com/LovationAdmin/finance-api/models"
	"github.com/LovationAdmin/finance-api/services"
	"github.com/LovationAdmin/finance-api/utils"

	"github.com/gin-gonic/gin"
)

// Notifier pushes "data changed" signals to a user's open websocket sessions.
type Notifier interface {
	NotifyUser(userID, entity, action string)
}

func notify(n Notifier, userID, entity, action string) {
	if n != nil && userID != "" {
		n.NotifyUser(userID, entity, action)
	}
}

// resolveUserID prefers an explicit userId from the request and falls back to the token identity.
// A signed-in caller may only name their own id. On failure the response is already written.
func resolveUserID(c *gin.Context, explicit string) (string, bool) {
	if explicit == "" {
		explicit = c.Query("userId")
	}
	subject := middleware.GetUserID(c)
	switch {
	case explicit == "" && subject == "":
		missingUserID(c)
		return "", false
	case explicit == "":
		return subject, true
	case subject != "" && subject != explicit:
		c.JSON(http.StatusForbidden, gin.H{"error": "userId does not match the signed-in user"})
		return "", false
	}
	return explicit, true
}

// respondError maps service errors onto status codes. Anything unexpected is logged
// and answered with the generic message so store details never reach the client.
func respondError(c *gin.Context, err error, generic string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrBudgetConflict),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrTOTPEnabled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrTOTPRequired),
		errors.Is(err, services.ErrInvalidTOTP):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrTOTPNotSetup):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		utils.SafeError("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": generic})
	}
}

func missingUserID(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId"})
}

// bindID reads the record id from ?id= or from a {"id": ...} body.
func bindID(c *gin.Context) (string, bool) {
	if id := c.Query("id"); id != "" {
		return id, true
	}
	var req models.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing id"})
		return "", false
	}
	return req.ID, true
}

// queryInt returns nil when the parameter is absent or not a number.
func queryInt(c *gin.Context, key string) *int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return nil
	}
	return &v
}

// periodFromQuery reads month/year, falling back to the current UTC month for whichever is missing or invalid.
func periodFromQuery(c *gin.Context) services.Period {
	p := services.PeriodOf(time.Now())
	if m := queryInt(c, "month"); m != nil && *m >= 1 && *m <= 12 {
		p.Month = *m
	}
	if y := queryInt(c, "year"); y != nil && *y >= 1 && *y <= 9999 {
		p.Year = *y
	}
	return p
}
