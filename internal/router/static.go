// internal/router/static.go
package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/marketflow-backend/internal/i18n"
	"github.com/javajoker/marketflow-backend/internal/utils"
)

// staticFallback serves the built client bundle. Unknown non-API paths get
// index.html so client-side routes survive a reload. API paths always get a
// JSON 404.
func staticFallback(distPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/api" || strings.HasPrefix(path, "/api/") {
			utils.NotFoundResponse(c, i18n.KeyRouteNotFound)
			return
		}

		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.String(http.StatusNotFound, "Not Found")
			return
		}

		if distPath == "" || !isDir(distPath) {
			c.String(http.StatusNotFound, "Not Found")
			return
		}

		file := filepath.Join(distPath, filepath.FromSlash(filepath.Clean("/"+path)))
		if path != "/" && isFile(file) {
			c.File(file)
			return
		}

		index := filepath.Join(distPath, "index.html")
		if !isFile(index) {
			c.String(http.StatusNotFound, "Not Found")
			return
		}
		c.File(index)
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
