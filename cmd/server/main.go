package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/damian-lis/checkout-flow/internal/api"
	"github.com/damian-lis/checkout-flow/internal/config"
	"github.com/damian-lis/checkout-flow/internal/saleor"
	"github.com/damian-lis/checkout-flow/internal/validation"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	client := saleor.NewClient(cfg.Saleor, logger)
	rules := validation.NewResolver(client, logger)

	router := api.NewRouter(cfg, client, rules, logger)

	logger.Info("Starting checkout flow server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
