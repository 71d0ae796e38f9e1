package services

import (
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	apperrors "investmon/internal/errors"
	"investmon/internal/models"
	"investmon/internal/valuation"
)

// priceService handles the daily price store. Latest-close lookups are
// cached with a short TTL because the price refresh pass hits the same
// symbols repeatedly; any upload flushes the cache.
type priceService struct {
	db     *gorm.DB
	latest *cache.Cache
}

// NewPriceService creates a new PriceServicer over the stock store.
func NewPriceService(db *gorm.DB) PriceServicer {
	return &priceService{
		db:     db,
		latest: cache.New(5*time.Minute, 10*time.Minute),
	}
}

// UpsertDay replaces all price rows for the dates present in records and
// inserts the given records, making re-upload of a day idempotent. This is
// a whole-day replacement across all symbols, not a merge.
func (s *priceService) UpsertDay(records []models.PriceRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	seen := make(map[string]struct{})
	dates := make([]string, 0, 4)
	for i := range records {
		if _, ok := seen[records[i].Date]; !ok {
			seen[records[i].Date] = struct{}{}
			dates = append(dates, records[i].Date)
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Where("date IN ?", dates).Delete(&models.PriceRecord{}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		if txErr := tx.Create(&records).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.latest.Flush()
	return len(records), nil
}

// LatestClose returns the close of the most recent dated record for the
// symbol. The boolean is false when the symbol has no price history.
func (s *priceService) LatestClose(symbol string) (float64, bool, error) {
	if cached, ok := s.latest.Get(symbol); ok {
		return cached.(float64), true, nil
	}

	var record models.PriceRecord
	err := s.db.Where("symbol = ?", symbol).Order("date DESC").First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.latest.Set(symbol, record.Close, cache.DefaultExpiration)
	return record.Close, true, nil
}

// History returns all records for a symbol in ascending date order.
func (s *priceService) History(symbol string) ([]models.PriceRecord, error) {
	var records []models.PriceRecord
	if err := s.db.Where("symbol = ?", symbol).Order("date ASC").Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(records) == 0 {
		return nil, apperrors.ErrSymbolNotFound
	}
	return records, nil
}

// SymbolDetail returns a symbol's latest record, full history, and range
// statistics over that history.
func (s *priceService) SymbolDetail(symbol string) (*SymbolDetail, error) {
	history, err := s.History(symbol)
	if err != nil {
		return nil, err
	}

	detail := &SymbolDetail{
		Symbol:  symbol,
		Latest:  history[len(history)-1],
		History: history,
	}

	var volumeSum float64
	for i := range history {
		r := &history[i]
		if i == 0 || r.High > detail.Stats.High52 {
			detail.Stats.High52 = r.High
		}
		if i == 0 || r.Low < detail.Stats.Low52 {
			detail.Stats.Low52 = r.Low
		}
		volumeSum += r.Volume
	}
	detail.Stats.AvgVolume = volumeSum / float64(len(history))

	return detail, nil
}

// MarketOverview returns all records at the global maximum date, one per
// symbol, each with its prior close and day-over-day change percentage.
// An empty store yields an empty overview.
func (s *priceService) MarketOverview() (*MarketOverview, error) {
	var maxDate *string
	if err := s.db.Model(&models.PriceRecord{}).Select("MAX(date)").Scan(&maxDate).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if maxDate == nil {
		return &MarketOverview{Quotes: []Quote{}}, nil
	}

	var latest []models.PriceRecord
	if err := s.db.Where("date = ?", *maxDate).Order("symbol ASC").Find(&latest).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	overview := &MarketOverview{Date: *maxDate, Quotes: make([]Quote, 0, len(latest))}
	for i := range latest {
		quote := Quote{PriceRecord: latest[i]}

		var prior models.PriceRecord
		err := s.db.Where("symbol = ? AND date < ?", latest[i].Symbol, *maxDate).
			Order("date DESC").First(&prior).Error
		switch {
		case err == nil:
			quote.PreviousClose = &prior.Close
			quote.ChangePct = valuation.ChangePercent(latest[i].Close, prior.Close)
		case errors.Is(err, gorm.ErrRecordNotFound):
			// No prior trading day: change stays 0.
		default:
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		overview.Quotes = append(overview.Quotes, quote)
	}

	return overview, nil
}

// Symbols returns all distinct symbols in ascending order.
func (s *priceService) Symbols() ([]string, error) {
	var symbols []string
	if err := s.db.Model(&models.PriceRecord{}).
		Distinct("symbol").Order("symbol ASC").Pluck("symbol", &symbols).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return symbols, nil
}
