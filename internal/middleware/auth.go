// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/utils"
)

// sessionToken reads the session from the auth cookie, falling back to an
// "Authorization: Bearer <token>" header for API clients.
func sessionToken(c *gin.Context, cookieName string) (string, bool) {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie, true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func invalidTokenMessage(c *gin.Context) string {
	return i18n.T(utils.GetLangFromContext(c), i18n.KeyAuthInvalidToken)
}

func setSession(c *gin.Context, claims *utils.JWTClaims) {
	c.Set(utils.ContextUserID, claims.UserID)
	c.Set(utils.ContextUsername, claims.Username)
	c.Set(utils.ContextEmail, claims.Email)
	c.Set(utils.ContextAccountType, claims.AccountType)
}

func AuthRequired(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := sessionToken(c, cookieName)
		if !ok {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			utils.UnauthorizedResponse(c, invalidTokenMessage(c))
			c.Abort()
			return
		}

		setSession(c, claims)
		c.Next()
	}
}

// AdminRequired must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountType, _ := utils.GetAccountTypeFromContext(c)
		if accountType != string(models.AccountTypeAdmin) {
			utils.ForbiddenResponse(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches the session when a valid token is present and lets
// guests through otherwise.
func OptionalAuth(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := sessionToken(c, cookieName)
		if !ok {
			c.Next()
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			c.Next()
			return
		}

		setSession(c, claims)
		c.Next()
	}
}
