// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/marketflow-backend/internal/i18n"
)

const defaultLang = "en"

// I18nMiddleware stores the response language under "lang". An explicit
// ?lang= wins over Accept-Language; the first supported tag is used.
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		supported := make(map[string]struct{})
		for _, lang := range i18n.GetSupportedLanguages() {
			supported[lang] = struct{}{}
		}

		lang := defaultLang
		candidates := []string{c.Query("lang")}
		// Handle cases like "zh-TW,zh;q=0.9,en;q=0.8"
		for _, part := range strings.Split(c.GetHeader("Accept-Language"), ",") {
			candidates = append(candidates, strings.Split(part, ";")[0])
		}

		for _, candidate := range candidates {
			if normalized := normalizeLang(candidate); normalized != "" {
				if _, ok := supported[normalized]; ok {
					lang = normalized
					break
				}
			}
		}

		c.Set("lang", lang)
		c.Next()
	}
}

func normalizeLang(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}

	switch strings.ToLower(strings.ReplaceAll(tag, "_", "-")) {
	case "zh-tw", "zh-hant", "zh-hk", "zh-hant-tw":
		return "zh_TW"
	}

	return strings.ToLower(strings.SplitN(strings.ReplaceAll(tag, "_", "-"), "-", 2)[0])
}
