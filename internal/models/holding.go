package models

// NonStockSymbol marks a manually valued holding with no market price feed.
// Such rows always have Shares fixed at 1 and carry the manual valuation in
// both AveragePrice and LatestPrice.
const NonStockSymbol = "NON-STOCK"

// Holding represents shares of a symbol held in a specific account, or a
// flat manual valuation when Symbol is NonStockSymbol. LatestPrice is an
// advisory cache derived from the price store, never authoritative.
type Holding struct {
	Base
	Symbol       string   `gorm:"not null;index" json:"symbol"`
	Shares       float64  `gorm:"not null" json:"shares"`
	AveragePrice float64  `gorm:"not null" json:"average_price"`
	LatestPrice  *float64 `json:"latest_price"`
	Account      string   `gorm:"not null;index" json:"account"`
	InvestmentID *uint    `json:"investment_id"`
}

// IsNonStock reports whether the holding is a manually valued entry.
func (h *Holding) IsNonStock() bool {
	return h.Symbol == NonStockSymbol
}
