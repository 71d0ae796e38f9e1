package database

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the file paths of the two sqlite stores. Price history and
// the ledger live in separate databases, with no cross-referential
// integrity between them.
type Config struct {
	StockPath  string
	LedgerPath string
}

// NewConfig creates a new database configuration
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, we'll use defaults or environment variables
		fmt.Println("Warning: .env file not found")
	}

	return &Config{
		StockPath:  getEnv("STOCK_DB_PATH", "stocks.db"),
		LedgerPath: getEnv("LEDGER_DB_PATH", "investments.db"),
	}, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
