package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"investmon/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestPriceRecord creates a daily price row for the given symbol and date.
func CreateTestPriceRecord(t *testing.T, db *gorm.DB, symbol, date string, close float64) *models.PriceRecord {
	t.Helper()

	record := &models.PriceRecord{
		Symbol: symbol,
		Date:   date,
		Open:   close * 0.99,
		High:   close * 1.02,
		Low:    close * 0.97,
		Close:  close,
		Volume: 1_000_000,
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create test price record: %v", err)
	}
	return record
}

// CreateTestInvestment creates an investment with a unique name and no transactions.
func CreateTestInvestment(t *testing.T, db *gorm.DB) *models.Investment {
	t.Helper()

	inv := &models.Investment{
		Name:        fmt.Sprintf("Test Investment %d", nextID()),
		Platform:    "Test Platform",
		AccountName: "Test Account",
		Type:        "Fund",
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return inv
}

// CreateTestTransaction creates a dated cash movement against an investment.
// The parent's running total is not touched; tests exercising the running
// total go through the service.
func CreateTestTransaction(t *testing.T, db *gorm.DB, investmentID uint, date string, amount float64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Date:         date,
		Amount:       amount,
		InvestmentID: investmentID,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestHolding creates a traded holding in the given account.
func CreateTestHolding(t *testing.T, db *gorm.DB, symbol, account string, shares, averagePrice float64) *models.Holding {
	t.Helper()

	holding := &models.Holding{
		Symbol:       symbol,
		Shares:       shares,
		AveragePrice: averagePrice,
		Account:      account,
	}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}

// CreateTestAccountSnapshot creates an account snapshot row at the given time.
func CreateTestAccountSnapshot(t *testing.T, db *gorm.DB, accountName string, date time.Time) *models.AccountSnapshot {
	t.Helper()

	snapshot := &models.AccountSnapshot{
		Date:          date,
		AccountName:   accountName,
		Goal:          "Growth",
		Platform:      "Test Platform",
		Type:          "Fund",
		TotalInvested: 1000,
		CurrentValue:  1100,
		ProfitLoss:    100,
		ProfitLossPct: 10,
	}
	if err := db.Create(snapshot).Error; err != nil {
		t.Fatalf("failed to create test account snapshot: %v", err)
	}
	return snapshot
}

// CreateTestPortfolioSnapshot creates a portfolio snapshot row.
func CreateTestPortfolioSnapshot(t *testing.T, db *gorm.DB) *models.PortfolioSnapshot {
	t.Helper()

	snapshot := &models.PortfolioSnapshot{
		Date:          time.Now(),
		TotalInvested: 5000,
		CurrentValue:  5500,
		ProfitLoss:    500,
		ProfitLossPct: 10,
	}
	if err := db.Create(snapshot).Error; err != nil {
		t.Fatalf("failed to create test portfolio snapshot: %v", err)
	}
	return snapshot
}
