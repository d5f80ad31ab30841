package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/Nogs0/bot-api-Vercel/internal/handler"
	"github.com/Nogs0/bot-api-Vercel/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	DriverHandler *handler.DriverHandler
	ChatHandler   *handler.ChatHandler
	RedisClient   *redis.Client // optional, enables idempotent replay
	NewRelicApp   *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	handler.RegisterValidatorTagNames()

	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.RequestIDMiddleware())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	drivers := router.Group("/drivers")
	{
		drivers.GET("", deps.DriverHandler.GetAll)
		drivers.POST("/create", deps.DriverHandler.Create)
		drivers.POST("/update", deps.DriverHandler.UpdateStatus)
	}

	router.POST("/test", deps.ChatHandler.Test)
	router.POST("/message", deps.ChatHandler.Message)

	return router
}
