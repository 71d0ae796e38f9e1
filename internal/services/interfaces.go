package services

import (
	"time"

	"investmon/internal/models"
	"investmon/internal/pagination"
	"investmon/internal/valuation"
)

// Quote pairs a latest price record with its close on the prior trading day
// and the derived day-over-day change percentage.
type Quote struct {
	models.PriceRecord
	PreviousClose *float64 `json:"previous_close"`
	ChangePct     float64  `json:"change_pct"`
}

// MarketOverview is the latest-day view across all symbols.
type MarketOverview struct {
	Date   string  `json:"date"`
	Quotes []Quote `json:"quotes"`
}

// SymbolStats are range statistics over a symbol's full available history.
// The 52-week naming is a display label carried over from the dashboard;
// no actual windowing is applied.
type SymbolStats struct {
	High52    float64 `json:"high_52w"`
	Low52     float64 `json:"low_52w"`
	AvgVolume float64 `json:"avg_volume"`
}

// SymbolDetail bundles a symbol's latest record, ascending history, and stats.
type SymbolDetail struct {
	Symbol  string               `json:"symbol"`
	Latest  models.PriceRecord   `json:"latest"`
	History []models.PriceRecord `json:"history"`
	Stats   SymbolStats          `json:"stats"`
}

// PriceServicer defines the contract for the daily price store.
type PriceServicer interface {
	UpsertDay(records []models.PriceRecord) (int, error)
	LatestClose(symbol string) (float64, bool, error)
	History(symbol string) ([]models.PriceRecord, error)
	SymbolDetail(symbol string) (*SymbolDetail, error)
	MarketOverview() (*MarketOverview, error)
	Symbols() ([]string, error)
}

// InvestmentServicer defines the contract for investment/transaction ledger logic.
type InvestmentServicer interface {
	CreateInvestment(name, platform, accountName, investmentType string, initialAmount float64) (*models.Investment, error)
	GetInvestmentByID(id uint) (*models.Investment, error)
	ListInvestments(page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error)
	UpdateInvestment(id uint, name, platform, accountName, investmentType string) (*models.Investment, error)
	UpdateActualAmount(id uint, actualAmount float64) (*models.Investment, error)
	DeleteInvestment(id uint) error
	AddTransaction(investmentID uint, date string, amount float64, notes string) (*models.Transaction, error)
	GetTransactions(investmentID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
}

// HoldingFilter holds optional filter parameters for listing holdings.
type HoldingFilter struct {
	Account         string
	Symbol          string
	ExcludeNonStock bool
}

// HoldingServicer defines the contract for portfolio holding logic.
type HoldingServicer interface {
	CreateHolding(symbol string, shares, averagePrice float64, account string, investmentID *uint) (*models.Holding, error)
	GetHoldingByID(id uint) (*models.Holding, error)
	ListHoldings(filter HoldingFilter) ([]models.Holding, error)
	UpdateHolding(id uint, symbol string, shares, averagePrice float64, account string, investmentID *uint) (*models.Holding, error)
	DeleteHolding(id uint) error
	SetManualValue(account string, marketValue float64) (*models.Holding, error)
	RefreshLatestPrices() (int, error)
	AggregatedHoldings() ([]valuation.SymbolAggregate, error)
}

// AccountSnapshotInput is one account's valuation row in a batch save.
type AccountSnapshotInput struct {
	AccountName   string
	Goal          string
	Platform      string
	Type          string
	TotalInvested float64
	CurrentValue  float64
	ProfitLoss    float64
	ProfitLossPct float64
}

// SnapshotServicer defines the contract for snapshot recording and history.
type SnapshotServicer interface {
	SavePortfolioSnapshot(totalInvested, currentValue, profitLoss, profitLossPct float64) (*models.PortfolioSnapshot, error)
	ListPortfolioSnapshots(page pagination.PageRequest) (*pagination.PageResponse[models.PortfolioSnapshot], error)
	DeletePortfolioSnapshot(id uint) error
	SaveAccountSnapshots(inputs []AccountSnapshotInput) (int, time.Time, error)
	ListAccountSnapshots(account string, page pagination.PageRequest) (*pagination.PageResponse[models.AccountSnapshot], error)
	DeleteAccountSnapshot(id uint) error
	BulkDeleteAccountSnapshots(account, date string) (int64, error)
	AccountNames() ([]string, error)
}
