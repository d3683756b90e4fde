package handler

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed swagger.html
var swaggerHTML []byte

//go:embed openapi.yaml
var openAPIDoc []byte

// RegisterDocs serves the embedded OpenAPI description and a Swagger UI page for it.
func RegisterDocs(r *gin.Engine) {
	r.GET(OpenAPIPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", openAPIDoc)
	})
	r.GET(DocsPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", swaggerHTML)
	})
}
