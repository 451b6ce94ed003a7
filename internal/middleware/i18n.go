// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/utils"
)

func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(utils.ContextLang, resolveLanguage(c.GetHeader("Accept-Language"), defaultLang))
		c.Next()
	}
}

// resolveLanguage picks the first supported language from an Accept-Language
// header such as "zh-TW,zh;q=0.9,en;q=0.8".
func resolveLanguage(header, defaultLang string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.Split(part, ";")[0])

		var lang string
		switch {
		case tag == "":
			continue
		case tag == "zh-TW" || tag == "zh-Hant" || tag == "zh_TW" || tag == "zh":
			lang = "zh_TW"
		case strings.HasPrefix(tag, "en"):
			lang = "en"
		default:
			lang = tag
		}
		if i18n.IsSupported(lang) {
			return lang
		}
	}
	return defaultLang
}
