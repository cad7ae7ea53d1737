package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"taximeter/internal/handler"
	"taximeter/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	MeterHandler  *handler.MeterHandler
	TariffHandler *handler.TariffHandler
	RedisClient   *redis.Client
	NewRelicApp   *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
		router.Use(middleware.NewRelicErrorMiddleware())
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Meter routes.
		m := v1.Group("/meter")
		{
			m.POST("/start", deps.MeterHandler.Start)
			m.POST("/stop", deps.MeterHandler.Stop)
			m.POST("/reset", deps.MeterHandler.Reset)
			m.POST("/position", deps.MeterHandler.Position)
			m.GET("/snapshot", deps.MeterHandler.Snapshot)
			m.GET("/receipt", deps.MeterHandler.Receipt)
		}

		// Tariff routes.
		tariffs := v1.Group("/tariffs")
		{
			tariffs.GET("", deps.TariffHandler.GetAll)
			tariffs.GET("/:name", deps.TariffHandler.Get)
			tariffs.POST("", deps.TariffHandler.Create)
			tariffs.PUT("/:name", deps.TariffHandler.Update)
		}
	}

	return router
}
