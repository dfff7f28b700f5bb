package api

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.yaml
var openAPIDoc []byte

const openAPIPath = "/swagger/openapi.yaml"

// RegisterDocs serves the OpenAPI document and a Swagger UI pointed at it.
func RegisterDocs(router gin.IRoutes) {
	ui := httpSwagger.Handler(httpSwagger.URL(openAPIPath))
	router.GET("/swagger/*any", func(c *gin.Context) {
		if c.Request.URL.Path == openAPIPath {
			c.Data(http.StatusOK, "application/yaml", openAPIDoc)
			return
		}
		ui.ServeHTTP(c.Writer, c.Request)
	})
}
