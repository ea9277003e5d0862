package http

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

var cacheableExtensions = map[string]struct{}{
	".css": {}, ".js": {}, ".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".ico": {}, ".svg": {}, ".woff2": {},
}

// registerStatic serves the web client from dir: assets under /static, the
// index page at / and the crawler files at the root.
func registerStatic(router *gin.Engine, dir string) {
	assets := router.Group("/static", assetCacheHeaders())
	assets.StaticFS("/", gin.Dir(filepath.Join(dir, "static"), false))

	router.GET("/", func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache")
		c.File(filepath.Join(dir, "index.html"))
	})
	for _, name := range []string{"robots.txt", "sitemap.xml"} {
		file := filepath.Join(dir, name)
		router.GET("/"+name, func(c *gin.Context) {
			c.File(file)
		})
	}
}

func assetCacheHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ext := strings.ToLower(path.Ext(c.Request.URL.Path))
		if _, ok := cacheableExtensions[ext]; ok {
			c.Header("Cache-Control", "public, max-age=3600")
		}
		c.Next()
	}
}

func notFound(c *gin.Context) {
	abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "Resource not found", nil))
}

func methodNotAllowed(c *gin.Context) {
	abortWithError(c, NewHTTPError(http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil))
}
