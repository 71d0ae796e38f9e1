package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Databases
	StockDBPath  string
	LedgerDBPath string

	// Theme cookie lifetime in seconds
	ThemeCookieMaxAge int
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8443"),
		Env:  getEnv("ENV", "development"),

		// Databases
		StockDBPath:  getEnv("STOCK_DB_PATH", "stocks.db"),
		LedgerDBPath: getEnv("LEDGER_DB_PATH", "investments.db"),
	}

	// Theme cookie max age, default 30 days
	maxAgeStr := getEnv("THEME_COOKIE_MAX_AGE", "2592000")
	maxAge, err := strconv.Atoi(maxAgeStr)
	if err != nil {
		log.Printf("Warning: invalid THEME_COOKIE_MAX_AGE value '%s', falling back to 30 days\n", maxAgeStr)
		maxAge = 60 * 60 * 24 * 30
	}
	config.ThemeCookieMaxAge = maxAge

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
