package models

// PriceRecord is one daily OHLCV row for a symbol in the price store.
// Rows are written only in whole-day batches by CSV upload: re-uploading a
// day replaces every row for that day. Dates are stored as YYYY-MM-DD
// strings so lexicographic ordering matches chronological ordering.
type PriceRecord struct {
	ID      uint     `gorm:"primaryKey" json:"id"`
	Symbol  string   `gorm:"not null;uniqueIndex:idx_stocks_symbol_date" json:"symbol"`
	Date    string   `gorm:"not null;index;uniqueIndex:idx_stocks_symbol_date" json:"date"`
	Open    float64  `json:"open"`
	High    float64  `json:"high"`
	Low     float64  `json:"low"`
	Close   float64  `json:"close"`
	Volume  float64  `json:"volume"`
	NetFlow *float64 `gorm:"column:nfb_nfs" json:"nfb_nfs"`
}

// TableName keeps the table name of the original stocks database.
func (PriceRecord) TableName() string {
	return "stocks"
}
