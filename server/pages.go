package server

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func registerPages(e *gin.Engine) {
	e.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{"Title": "Home"})
	})
	e.GET("/Home/Privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{"Title": "Privacy Policy"})
	})
	e.GET("/Home/Error", func(c *gin.Context) {
		renderError(c, http.StatusOK)
	})
}

// renderError shows the error page with the request's id. It is never
// cached.
func renderError(c *gin.Context, status int) {
	c.Header("Cache-Control", "no-store, no-cache")
	c.HTML(status, "error.html", gin.H{
		"Title":     "Error",
		"Status":    status,
		"RequestID": c.GetString(requestIDKey),
	})
}
