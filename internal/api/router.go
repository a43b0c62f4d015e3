// internal/api/router.go
package api

import (
	"manad-service/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

const serviceName = "report-service"

// NewRouter registers the report routes. Authentication is handled by the gateway.
func NewRouter(manadHandler *handlers.ManadHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/report/manad", manadHandler.HandleReport)
		apiV1.POST("/summary/manad", manadHandler.HandleSummary)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP", "service": serviceName})
	})

	return router
}
