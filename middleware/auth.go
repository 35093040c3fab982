package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/LovationAdmin/finance-api/utils"

	"github.com/gin-gonic/gin"
)

const (
	contextUserID      = "user_id"
	contextEmail       = "email"
	contextTokenExpiry = "token_expiry"

	tokenCookie = "finance_token"
)

// tokenFromRequest looks at the Authorization header, then ?token= (websockets and
// downloads cannot set headers), then the session cookie.
func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if token := c.Query("token"); token != "" {
		return token
	}
	if cookie, err := c.Cookie(tokenCookie); err == nil {
		return cookie
	}
	return ""
}

// Authenticate attaches the token identity to the context when a valid token is present.
// Requests without one continue anonymously; RequireAuth rejects them where needed.
func Authenticate(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := utils.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			utils.SafeDebug("rejected token: %v", err)
			c.Next()
			return
		}

		c.Set(contextUserID, claims.UserID)
		c.Set(contextEmail, claims.Email)
		if claims.ExpiresAt != nil {
			c.Set(contextTokenExpiry, claims.ExpiresAt.Time)
		}
		c.Next()
	}
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user id, or "" for anonymous requests.
func GetUserID(c *gin.Context) string {
	return c.GetString(contextUserID)
}

func GetEmail(c *gin.Context) string {
	return c.GetString(contextEmail)
}

func GetTokenExpiry(c *gin.Context) (time.Time, bool) {
	v, ok := c.Get(contextTokenExpiry)
	if !ok {
		return time.Time{}, false
	}
	t, ok := v.(time.Time)
	return t, ok
}
