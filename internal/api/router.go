package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/damian-lis/checkout-flow/internal/api/handlers"
	"github.com/damian-lis/checkout-flow/internal/checkout"
	"github.com/damian-lis/checkout-flow/internal/config"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, gateway handlers.Gateway, rules checkout.RulesResolver, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.POST("/checkouts", handlers.HandleCreateCheckout(cfg, gateway, logger))
		v1.GET("/checkouts/:id", handlers.HandleGetCheckout(gateway, rules, logger))
		v1.POST("/checkouts/:id/contact", handlers.HandleContactSubmit(gateway, rules, logger))
		v1.POST("/checkouts/:id/shipping", handlers.HandleShippingSubmit(gateway, rules, logger))
		v1.POST("/checkouts/:id/payment", handlers.HandlePaymentSubmit(gateway, rules, logger))
		v1.GET("/orders/:id", handlers.HandleGetOrder(gateway, rules, logger))
		v1.GET("/validation-rules", handlers.HandleValidationRules(rules, logger))
	}

	return router
}

// requestIDMiddleware attaches a request id to every request
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}
