package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Saleor      SaleorConfig
	Checkout    CheckoutConfig
	LogLevel    string
}

type SaleorConfig struct {
	APIURL  string
	Timeout time.Duration
}

type CheckoutConfig struct {
	Channel          string
	ProductVariantID string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("SALEOR_TIMEOUT_SECONDS", 30)
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	timeoutSeconds := viper.GetInt("SALEOR_TIMEOUT_SECONDS")
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Saleor: SaleorConfig{
			APIURL:  getEnvOrViper("SALEOR_API_URL", ""),
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
		Checkout: CheckoutConfig{
			Channel:          getEnvOrViper("SALEOR_CHANNEL", "default-channel"),
			ProductVariantID: getEnvOrViper("PRODUCT_VARIANT_ID", ""),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Saleor.APIURL == "" {
		return nil, fmt.Errorf("SALEOR_API_URL is required")
	}
	if cfg.Checkout.ProductVariantID == "" {
		return nil, fmt.Errorf("PRODUCT_VARIANT_ID is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
