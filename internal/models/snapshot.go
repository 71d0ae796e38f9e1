package models

import "time"

// PortfolioSnapshot is an immutable point-in-time record of aggregate
// portfolio valuation, created only by explicit user action.
// No Base embed: snapshots are never updated.
type PortfolioSnapshot struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Date          time.Time `gorm:"not null" json:"date"`
	TotalInvested float64   `gorm:"not null" json:"total_invested"`
	CurrentValue  float64   `gorm:"not null" json:"current_value"`
	ProfitLoss    float64   `gorm:"not null" json:"profit_loss"`
	ProfitLossPct float64   `gorm:"not null" json:"profit_loss_pct"`
}

// AccountSnapshot is an immutable per-account valuation record. A single
// save action produces one row per account, all sharing a timestamp.
type AccountSnapshot struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Date          time.Time `gorm:"not null;index" json:"date"`
	AccountName   string    `gorm:"not null;index" json:"account_name"`
	Goal          string    `gorm:"not null" json:"goal"`
	Platform      string    `gorm:"not null" json:"platform"`
	Type          string    `gorm:"not null" json:"type"`
	TotalInvested float64   `gorm:"not null" json:"total_invested"`
	CurrentValue  float64   `gorm:"not null" json:"current_value"`
	ProfitLoss    float64   `gorm:"not null" json:"profit_loss"`
	ProfitLossPct float64   `gorm:"not null" json:"profit_loss_pct"`
}
