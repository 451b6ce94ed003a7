// internal/middleware/page_gate.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/utils"
)

const (
	LoginPath          = "/login"
	RegisterPath       = "/register"
	AdminPrefix        = "/admin"
	AdminDashboardPath = "/admin/dashboard"
	StorefrontPath     = "/products"
)

// PageGate redirects page requests based on the session. Admin pages send
// guests to the login page and customers to the home page. The login and
// registration pages, including their sub-paths, send signed-in users to their landing page. Every other
// path passes through untouched.
func PageGate(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		adminPage := path == AdminPrefix || strings.HasPrefix(path, AdminPrefix+"/")
		authPage := strings.HasPrefix(path, LoginPath) || strings.HasPrefix(path, RegisterPath)
		if !adminPage && !authPage {
			c.Next()
			return
		}

		var accountType string
		if token, ok := sessionToken(c, cookieName); ok {
			if claims, err := utils.ValidateJWT(token); err == nil {
				setSession(c, claims)
				accountType = claims.AccountType
			}
		}

		target := pageRedirect(adminPage, accountType)
		if target == "" {
			c.Next()
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, target)
		c.Abort()
	}
}

func pageRedirect(adminPage bool, accountType string) string {
	switch {
	case adminPage && accountType == "":
		return LoginPath
	case adminPage && accountType != string(models.AccountTypeAdmin):
		return "/"
	case adminPage:
		return ""
	case accountType == string(models.AccountTypeAdmin):
		return AdminDashboardPath
	case accountType != "":
		return StorefrontPath
	}
	return ""
}
