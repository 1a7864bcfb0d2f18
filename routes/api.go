package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/address-parser/app/controllers"
	"github.com/address-parser/helpers/utils"
)

// SetupAPIRoutes thiết lập tất cả API routes
func SetupAPIRoutes(router *gin.Engine, postalController *controllers.PostalController, adminController *controllers.AdminController) {
	// API v1 group
	v1 := router.Group("/v1")
	{
		// Postal lookup/search routes
		postal := v1.Group("/postal")
		{
			postal.GET("/:code", postalController.Lookup)
			postal.GET("/search", postalController.Search)
			postal.GET("/towns", postalController.SearchByTown)
			postal.GET("/suggest", postalController.Suggest)
		}

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.POST("/ingest", adminController.TriggerIngest)
			admin.GET("/ingest/stats", adminController.IngestStats)
			admin.POST("/cache/invalidate", adminController.InvalidateCache)
		}
	}
}

// SetupHealthRoutes thiết lập health check routes
func SetupHealthRoutes(router *gin.Engine, postalController *controllers.PostalController) {
	// Root health check
	router.GET("/health", postalController.HealthCheck)

	// Readiness check
	router.GET("/ready", postalController.HealthCheck)

	// Liveness check
	router.GET("/live", postalController.HealthCheck)
}

// SetupAllRoutes thiết lập tất cả routes
func SetupAllRoutes(router *gin.Engine, postalController *controllers.PostalController, adminController *controllers.AdminController) {
	// Thiết lập middleware
	setupMiddleware(router)

	// Thiết lập các loại routes
	SetupWebRoutes(router)
	SetupHealthRoutes(router, postalController)
	SetupAPIRoutes(router, postalController, adminController)

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

// setupMiddleware thiết lập middleware cho router
func setupMiddleware(router *gin.Engine) {
	// Recovery middleware
	router.Use(gin.Recovery())

	// Logger middleware
	router.Use(gin.Logger())

	// Request ID middleware - every handler's error envelope carries this
	router.Use(requestIDMiddleware())
}

// requestIDMiddleware stamps every request with a correlation ID (echoing
// one supplied by the caller via X-Request-ID, or minting one with
// helpers/utils.GenerateShortID), read back by the controllers via
// c.Get("request_id").
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = utils.GenerateShortID()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
