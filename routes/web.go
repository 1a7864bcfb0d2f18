package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes thiết lập web routes (nếu cần trong tương lai)
func SetupWebRoutes(router *gin.Engine) {
	// Web routes group
	web := router.Group("/")
	{
		// Home page
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "Japan Postal Code Service",
				"version": "1.0.0",
				"docs":    "/docs",
			})
		})

		// API documentation
		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"api": "Japan Postal Code API v1",
				"endpoints": map[string]string{
					"lookup":        "GET /v1/postal/:code",
					"search":        "GET /v1/postal/search",
					"search_towns":  "GET /v1/postal/towns",
					"suggest":       "GET /v1/postal/suggest",
					"ingest":        "POST /v1/admin/ingest",
					"ingest_stats":  "GET /v1/admin/ingest/stats",
					"cache_invalidate": "POST /v1/admin/cache/invalidate",
					"health":        "GET /health",
				},
			})
		})

		// Status page
		web.GET("/status", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "running",
				"service": "Japan Postal Code Service",
			})
		})
	}
}
