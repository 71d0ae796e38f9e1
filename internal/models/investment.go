package models

// Investment represents a named investment account or goal.
// TotalAmount is a running sum of the investment's transaction amounts,
// maintained incrementally in the same database transaction as each insert.
// ActualAmount is an independently user-entered current valuation.
type Investment struct {
	Base
	Name         string  `gorm:"not null" json:"name"`
	Platform     string  `gorm:"not null" json:"platform"`
	AccountName  string  `gorm:"not null" json:"account_name"`
	Type         string  `gorm:"not null" json:"type"`
	TotalAmount  float64 `gorm:"not null;default:0" json:"total_amount"`
	ActualAmount float64 `gorm:"not null;default:0" json:"actual_amount"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:InvestmentID" json:"transactions,omitempty"`
}

// Transaction is a dated, signed cash movement against an Investment.
// Transactions belong to exactly one Investment and are removed when the
// parent Investment is deleted.
type Transaction struct {
	Base
	Date         string  `gorm:"not null" json:"date"`
	Amount       float64 `gorm:"not null" json:"amount"`
	InvestmentID uint    `gorm:"not null;index" json:"investment_id"`
	Notes        string  `json:"notes"`
}
