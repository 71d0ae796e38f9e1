package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "investmon/internal/errors"
	"investmon/internal/models"
	"investmon/internal/valuation"
)

// holdingService handles portfolio holding logic. It spans both stores:
// holdings live in the ledger, latest prices come from the price store.
type holdingService struct {
	db     *gorm.DB
	prices PriceServicer
}

// NewHoldingService creates a new HoldingServicer over the ledger store.
func NewHoldingService(db *gorm.DB, prices PriceServicer) HoldingServicer {
	return &holdingService{db: db, prices: prices}
}

// CreateHolding adds a holding for a traded symbol. Manually valued entries
// go through SetManualValue instead.
func (s *holdingService) CreateHolding(symbol string, shares, averagePrice float64, account string, investmentID *uint) (*models.Holding, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required")
	}
	if symbol == models.NonStockSymbol {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "manually valued holdings must use the manual-value operation")
	}
	if shares <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "shares must be positive")
	}

	holding := &models.Holding{
		Symbol:       symbol,
		Shares:       shares,
		AveragePrice: averagePrice,
		Account:      account,
		InvestmentID: investmentID,
	}
	if err := s.db.Create(holding).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return holding, nil
}

// GetHoldingByID returns a holding by ID.
func (s *holdingService) GetHoldingByID(id uint) (*models.Holding, error) {
	var holding models.Holding
	if err := s.db.First(&holding, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHoldingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &holding, nil
}

// ListHoldings returns holdings matching the filter, ordered by account
// then symbol.
func (s *holdingService) ListHoldings(filter HoldingFilter) ([]models.Holding, error) {
	query := s.db.Model(&models.Holding{})
	if filter.Account != "" {
		query = query.Where("account = ?", filter.Account)
	}
	if filter.Symbol != "" {
		query = query.Where("symbol = ?", strings.ToUpper(strings.TrimSpace(filter.Symbol)))
	}
	if filter.ExcludeNonStock {
		query = query.Where("symbol <> ?", models.NonStockSymbol)
	}

	var holdings []models.Holding
	if err := query.Order("account ASC, symbol ASC").Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return holdings, nil
}

// UpdateHolding replaces a holding's editable fields. The cached latest
// price is left alone; the next refresh pass overwrites it.
func (s *holdingService) UpdateHolding(id uint, symbol string, shares, averagePrice float64, account string, investmentID *uint) (*models.Holding, error) {
	holding, err := s.GetHoldingByID(id)
	if err != nil {
		return nil, err
	}
	if holding.IsNonStock() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "manually valued holdings must use the manual-value operation")
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" || symbol == models.NonStockSymbol {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid symbol")
	}
	if shares <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "shares must be positive")
	}

	updates := map[string]interface{}{
		"symbol":        symbol,
		"shares":        shares,
		"average_price": averagePrice,
		"account":       account,
		"investment_id": investmentID,
	}
	if err := s.db.Model(holding).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return holding, nil
}

// DeleteHolding removes a holding.
func (s *holdingService) DeleteHolding(id uint) error {
	if _, err := s.GetHoldingByID(id); err != nil {
		return err
	}
	if err := s.db.Delete(&models.Holding{}, id).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SetManualValue creates or updates the NON-STOCK holding for an account.
// The row is keyed by (account, NON-STOCK): shares stay fixed at 1 and the
// manual valuation overwrites both average and latest price, so subsequent
// updates never insert a second row.
func (s *holdingService) SetManualValue(account string, marketValue float64) (*models.Holding, error) {
	if account == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account is required")
	}

	var holding models.Holding
	err := s.db.Where("account = ? AND symbol = ?", account, models.NonStockSymbol).First(&holding).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		holding = models.Holding{
			Symbol:       models.NonStockSymbol,
			Shares:       1,
			AveragePrice: marketValue,
			LatestPrice:  &marketValue,
			Account:      account,
		}
		if err := s.db.Create(&holding).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	case err != nil:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	default:
		updates := map[string]interface{}{
			"average_price": marketValue,
			"latest_price":  marketValue,
		}
		if err := s.db.Model(&holding).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return &holding, nil
}

// RefreshLatestPrices is the explicit refresh pass: for every traded
// holding it looks up the latest close in the price store and persists it
// when one exists. NON-STOCK rows have no price history and are skipped.
// Returns the number of holdings updated. Views never call this implicitly.
func (s *holdingService) RefreshLatestPrices() (int, error) {
	var holdings []models.Holding
	if err := s.db.Where("symbol <> ?", models.NonStockSymbol).Find(&holdings).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updated := 0
	for i := range holdings {
		close, ok, err := s.prices.LatestClose(holdings[i].Symbol)
		if err != nil {
			return updated, err
		}
		if !ok {
			continue
		}
		if err := s.db.Model(&holdings[i]).Update("latest_price", close).Error; err != nil {
			return updated, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updated++
	}

	return updated, nil
}

// AggregatedHoldings returns the blended per-symbol positions across all
// accounts, computed from stored data without refreshing prices.
func (s *holdingService) AggregatedHoldings() ([]valuation.SymbolAggregate, error) {
	holdings, err := s.ListHoldings(HoldingFilter{ExcludeNonStock: true})
	if err != nil {
		return nil, err
	}
	return valuation.AggregateBySymbol(holdings), nil
}
