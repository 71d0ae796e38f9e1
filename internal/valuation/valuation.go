// Package valuation holds the pure computation layer for holdings: cost
// basis, market value, profit, day-over-day change, and cross-account
// aggregation by symbol. Nothing in this package touches storage.
package valuation

import (
	"math"
	"sort"

	"investmon/internal/models"
)

// TotalCost returns the cost basis of a holding.
func TotalCost(h *models.Holding) float64 {
	return h.Shares * h.AveragePrice
}

// MarketValue returns the current value of a holding. When no latest price
// is known (e.g. a freshly added holding before a refresh pass), it falls
// back to the cost basis.
func MarketValue(h *models.Holding) float64 {
	if h.LatestPrice != nil {
		return h.Shares * *h.LatestPrice
	}
	return h.Shares * h.AveragePrice
}

// Profit returns market value minus cost basis.
func Profit(h *models.Holding) float64 {
	return MarketValue(h) - TotalCost(h)
}

// ChangePercent returns the percentage change from prior to latest, rounded
// to two decimals. A zero or unknown prior close yields 0.
func ChangePercent(latest, prior float64) float64 {
	if prior == 0 {
		return 0
	}
	return math.Round((latest-prior)/prior*100*100) / 100
}

// SymbolAggregate is the blended position for one symbol across accounts.
type SymbolAggregate struct {
	Symbol       string  `json:"symbol"`
	TotalShares  float64 `json:"total_shares"`
	TotalCost    float64 `json:"total_cost"`
	MarketValue  float64 `json:"market_value"`
	Profit       float64 `json:"profit"`
	AveragePrice float64 `json:"average_price"`
	LatestPrice  float64 `json:"latest_price"`
}

// AggregateBySymbol groups holdings by symbol, summing shares, cost basis,
// market value, and profit across accounts. NON-STOCK rows are excluded.
// The blended average price is summed cost over summed shares (0 when the
// share sum is 0). The group's latest price is taken from the most recently
// updated holding that has one set, so the result does not depend on row
// order. Results are sorted by symbol.
func AggregateBySymbol(holdings []models.Holding) []SymbolAggregate {
	groups := make(map[string]*SymbolAggregate)
	priceSource := make(map[string]*models.Holding)

	for i := range holdings {
		h := &holdings[i]
		if h.IsNonStock() {
			continue
		}

		agg, ok := groups[h.Symbol]
		if !ok {
			agg = &SymbolAggregate{Symbol: h.Symbol}
			groups[h.Symbol] = agg
		}

		agg.TotalShares += h.Shares
		agg.TotalCost += TotalCost(h)
		agg.MarketValue += MarketValue(h)
		agg.Profit += Profit(h)

		if h.LatestPrice != nil && newerThan(h, priceSource[h.Symbol]) {
			priceSource[h.Symbol] = h
		}
	}

	result := make([]SymbolAggregate, 0, len(groups))
	for symbol, agg := range groups {
		if agg.TotalShares > 0 {
			agg.AveragePrice = agg.TotalCost / agg.TotalShares
		}
		if src := priceSource[symbol]; src != nil {
			agg.LatestPrice = *src.LatestPrice
		}
		result = append(result, *agg)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Symbol < result[j].Symbol })
	return result
}

// newerThan reports whether a should replace b as a group's price source:
// later update wins, higher ID breaks ties.
func newerThan(a, b *models.Holding) bool {
	if b == nil {
		return true
	}
	if !a.UpdatedAt.Equal(b.UpdatedAt) {
		return a.UpdatedAt.After(b.UpdatedAt)
	}
	return a.ID > b.ID
}
