package database

import (
	"fmt"

	"investmon/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Manager owns the two sqlite stores: daily price history and the
// investment ledger.
type Manager struct {
	stocks *gorm.DB
	ledger *gorm.DB
	config *Config
}

// NewManager opens both stores and returns a manager over them.
func NewManager(config *Config) (*Manager, error) {
	stocks, err := gorm.Open(sqlite.Open(config.StockPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open stock database: %w", err)
	}

	ledger, err := gorm.Open(sqlite.Open(config.LedgerPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	return &Manager{stocks: stocks, ledger: ledger, config: config}, nil
}

// RunMigrations applies pending SQL migrations to both stores from the
// migrations/ directory.
func (m *Manager) RunMigrations() error {
	logger.Get().Info("Running database migrations...")

	if err := runMigrations("file://migrations/stocks", m.config.StockPath); err != nil {
		return fmt.Errorf("stock store: %w", err)
	}
	if err := runMigrations("file://migrations/ledger", m.config.LedgerPath); err != nil {
		return fmt.Errorf("ledger store: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

func runMigrations(sourceURL, dbPath string) error {
	mig, err := migrate.New(sourceURL, "sqlite3://"+dbPath)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// Stocks returns the GORM handle of the price store.
func (m *Manager) Stocks() *gorm.DB {
	return m.stocks
}

// Ledger returns the GORM handle of the ledger store.
func (m *Manager) Ledger() *gorm.DB {
	return m.ledger
}
