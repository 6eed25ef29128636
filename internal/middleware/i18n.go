package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/princy-boutique/storefront/internal/i18n"
	"github.com/princy-boutique/storefront/internal/utils"
)

// I18nMiddleware picks the first supported language of Accept-Language.
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(utils.ContextLang, preferredLang(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// preferredLang handles headers like "hi-IN,hi;q=0.9,en;q=0.8". Quality
// values are ignored; order decides.
func preferredLang(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		base := strings.ToLower(strings.SplitN(strings.ReplaceAll(tag, "_", "-"), "-", 2)[0])
		if i18n.Supported(base) {
			return base
		}
	}
	return i18n.DefaultLang
}
