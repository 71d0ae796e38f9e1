// Package testutil provides test helpers for setting up in-memory databases,
// creating fixtures, and making assertions.
package testutil

import (
	"fmt"
	"testing"

	"investmon/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stockModels are the GORM models living in the price store.
var stockModels = []interface{}{
	&models.PriceRecord{},
}

// ledgerModels are the GORM models living in the ledger store.
var ledgerModels = []interface{}{
	&models.Investment{},
	&models.Transaction{},
	&models.Holding{},
	&models.PortfolioSnapshot{},
	&models.AccountSnapshot{},
}

// SetupStockDB creates an in-memory SQLite price store with its models migrated.
func SetupStockDB(t *testing.T) *gorm.DB {
	t.Helper()
	return setupDB(t, stockModels)
}

// SetupLedgerDB creates an in-memory SQLite ledger store with its models migrated.
func SetupLedgerDB(t *testing.T) *gorm.DB {
	t.Helper()
	return setupDB(t, ledgerModels)
}

// setupDB opens a uniquely named shared-cache memory database so that tests
// needing both stores at once get two independent databases.
func setupDB(t *testing.T, migrateModels []interface{}) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", nextID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(migrateModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
