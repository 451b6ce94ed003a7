// internal/handlers/pages.go
package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-backend/internal/utils"
)

// PageHandler serves the storefront and admin pages. With no static
// directory configured it answers with a JSON description of the page so the
// gate can be exercised without a frontend build.
type PageHandler struct {
	staticDir string
}

func NewPageHandler(staticDir string) *PageHandler {
	return &PageHandler{staticDir: staticDir}
}

func (h *PageHandler) Serve(c *gin.Context) {
	page := strings.Trim(c.Request.URL.Path, "/")

	if h.staticDir == "" {
		accountType, _ := utils.GetAccountTypeFromContext(c)
		c.JSON(http.StatusOK, gin.H{
			"page":         "/" + page,
			"account_type": accountType,
		})
		return
	}

	for _, candidate := range h.candidates(page) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			c.File(candidate)
			return
		}
	}

	// client-side routing fallback
	index := filepath.Join(h.staticDir, "index.html")
	if _, err := os.Stat(index); err == nil {
		c.File(index)
		return
	}
	c.Status(http.StatusNotFound)
}

func (h *PageHandler) candidates(page string) []string {
	clean := filepath.Clean("/" + page)
	if clean == "/" {
		return []string{filepath.Join(h.staticDir, "index.html")}
	}
	base := filepath.Join(h.staticDir, clean)
	return []string{base, base + ".html", filepath.Join(base, "index.html")}
}
