package services

import (
	"testing"

	"gorm.io/gorm"

	"investmon/internal/models"
	"investmon/internal/testutil"
)

// setupHoldingService wires a holding service over a fresh ledger store and a
// fresh price store and returns both handles for fixtures.
func setupHoldingService(t *testing.T) (HoldingServicer, *gorm.DB, *gorm.DB) {
	t.Helper()

	stocks := testutil.SetupStockDB(t)
	ledger := testutil.SetupLedgerDB(t)
	t.Cleanup(func() {
		testutil.TeardownTestDB(t, stocks)
		testutil.TeardownTestDB(t, ledger)
	})

	return NewHoldingService(ledger, NewPriceService(stocks)), ledger, stocks
}

func TestCreateHolding(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		svc, _, _ := setupHoldingService(t)

		holding, err := svc.CreateHolding("aapl ", 10, 100, "Broker A", nil)
		testutil.AssertNoError(t, err)
		if holding.ID == 0 {
			t.Fatal("expected non-zero holding ID")
		}
		if holding.Symbol != "AAPL" {
			t.Errorf("expected normalized symbol AAPL, got %q", holding.Symbol)
		}
		if holding.LatestPrice != nil {
			t.Errorf("expected no latest price until a refresh pass, got %v", *holding.LatestPrice)
		}
	})

	t.Run("rejects_non_stock_symbol", func(t *testing.T) {
		svc, _, _ := setupHoldingService(t)

		_, err := svc.CreateHolding(models.NonStockSymbol, 1, 100, "Broker A", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_non_positive_shares", func(t *testing.T) {
		svc, _, _ := setupHoldingService(t)

		_, err := svc.CreateHolding("AAPL", 0, 100, "Broker A", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_empty_symbol", func(t *testing.T) {
		svc, _, _ := setupHoldingService(t)

		_, err := svc.CreateHolding("  ", 10, 100, "Broker A", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListHoldings(t *testing.T) {
	t.Run("filters", func(t *testing.T) {
		svc, ledger, _ := setupHoldingService(t)
		testutil.CreateTestHolding(t, ledger, "AAPL", "Broker A", 10, 100)
		testutil.CreateTestHolding(t, ledger, "MSFT", "Broker B", 5, 300)
		testutil.CreateTestHolding(t, ledger, models.NonStockSymbol, "Broker A", 1, 5000)

		all, err := svc.ListHoldings(HoldingFilter{})
		testutil.AssertNoError(t, err)
		if len(all) != 3 {
			t.Errorf("expected 3 holdings, got %d", len(all))
		}

		byAccount, err := svc.ListHoldings(HoldingFilter{Account: "Broker A"})
		testutil.AssertNoError(t, err)
		if len(byAccount) != 2 {
			t.Errorf("expected 2 holdings in Broker A, got %d", len(byAccount))
		}

		traded, err := svc.ListHoldings(HoldingFilter{ExcludeNonStock: true})
		testutil.AssertNoError(t, err)
		if len(traded) != 2 {
			t.Errorf("expected 2 traded holdings, got %d", len(traded))
		}

		bySymbol, err := svc.ListHoldings(HoldingFilter{Symbol: "msft"})
		testutil.AssertNoError(t, err)
		if len(bySymbol) != 1 || bySymbol[0].Symbol != "MSFT" {
			t.Errorf("symbol filter not normalized: %+v", bySymbol)
		}
	})
}

func TestUpdateHolding(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		svc, ledger, _ := setupHoldingService(t)
		holding := testutil.CreateTestHolding(t, ledger, "AAPL", "Broker A", 10, 100)

		updated, err := svc.UpdateHolding(holding.ID, "msft", 5, 300, "Broker B", nil)
		testutil.AssertNoError(t, err)
		if updated.Symbol != "MSFT" {
			t.Errorf("expected MSFT, got %s", updated.Symbol)
		}

		var stored models.Holding
		ledger.First(&stored, holding.ID)
		if stored.Shares != 5 || stored.Account != "Broker B" {
			t.Errorf("update not persisted: %+v", stored)
		}
	})

	t.Run("rejects_non_stock_row", func(t *testing.T) {
		svc, ledger, _ := setupHoldingService(t)
		holding := testutil.CreateTestHolding(t, ledger, models.NonStockSymbol, "Broker A", 1, 5000)

		_, err := svc.UpdateHolding(holding.ID, "AAPL", 10, 100, "Broker A", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("not_found", func(t *testing.T) {
		svc, _, _ := setupHoldingService(t)

		_, err := svc.UpdateHolding(9999, "AAPL", 10, 100, "Broker A", nil)
		testutil.AssertAppError(t, err, "HOLDING_NOT_FOUND")
	})
}

func TestDeleteHolding(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		svc, ledger, _ := setupHoldingService(t)
		holding := testutil.CreateTestHolding(t, ledger, "AAPL", "Broker A", 10, 100)

		err := svc.DeleteHolding(holding.ID)
		testutil.AssertNoError(t, err)

		var count int64
		ledger.Model(&models.Holding{}).Count(&count)
		if count != 0 {
			t.Errorf("expected holding removed, got %d rows", count)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		svc, _, _ := setupHoldingService(t)

		err := svc.DeleteHolding(9999)
		testutil.AssertAppError(t, err, "HOLDING_NOT_FOUND")
	})
}

func TestSetManualValue(t *testing.T) {
	t.Run("creates_on_first_call", func(t *testing.T) {
		svc, ledger, _ := setupHoldingService(t)

		holding, err := svc.SetManualValue("Broker A", 5000)
		testutil.AssertNoError(t, err)
		if holding.Symbol != models.NonStockSymbol {
			t.Errorf("expected NON-STOCK symbol, got %s", holding.Symbol)
		}
		if holding.Shares != 1 {
			t.Errorf("expected shares fixed at 1, got %f", holding.Shares)
		}
		if holding.AveragePrice != 5000 {
			t.Errorf("expected average price 5000, got %f", holding.AveragePrice)
		}
		if holding.LatestPrice == nil || *holding.LatestPrice != 5000 {
			t.Errorf("expected latest price 5000, got %v", holding.LatestPrice)
		}

		var count int64
		ledger.Model(&models.Holding{}).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 row, got %d", count)
		}
	})

	t.Run("updates_in_place_on_second_call", func(t *testing.T) {
		svc, ledger, _ := setupHoldingService(t)

		_, err := svc.SetManualValue("Broker A", 5000)
		testutil.AssertNoError(t, err)
		_, err = svc.SetManualValue("Broker A", 6000)
		testutil.AssertNoError(t, err)

		var count int64
		ledger.Model(&models.Holding{}).Count(&count)
		if count != 1 {
			t.Fatalf("expected single NON-STOCK row per account, got %d", count)
		}

		var stored models.Holding
		ledger.Where("account = ?", "Broker A").First(&stored)
		if stored.AveragePrice != 6000 || stored.LatestPrice == nil || *stored.LatestPrice != 6000 {
			t.Errorf("expected overwritten valuation 6000, got %+v", stored)
		}
	})

	t.Run("separate_rows_per_account", func(t *testing.T) {
		svc, ledger, _ := setupHoldingService(t)

		_, err := svc.SetManualValue("Broker A", 5000)
		testutil.AssertNoError(t, err)
		_, err = svc.SetManualValue("Broker B", 7000)
		testutil.AssertNoError(t, err)

		var count int64
		ledger.Model(&models.Holding{}).Count(&count)
		if count != 2 {
			t.Errorf("expected one row per account, got %d", count)
		}
	})

	t.Run("empty_account", func(t *testing.T) {
		svc, _, _ := setupHoldingService(t)

		_, err := svc.SetManualValue("", 5000)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestRefreshLatestPrices(t *testing.T) {
	t.Run("updates_traded_holdings", func(t *testing.T) {
		svc, ledger, stocks := setupHoldingService(t)
		testutil.CreateTestHolding(t, ledger, "AAPL", "Broker A", 10, 100)
		testutil.CreateTestHolding(t, ledger, "MSFT", "Broker A", 5, 300)
		testutil.CreateTestPriceRecord(t, stocks, "AAPL", "2026-08-24", 100)
		testutil.CreateTestPriceRecord(t, stocks, "AAPL", "2026-08-25", 104)
		testutil.CreateTestPriceRecord(t, stocks, "MSFT", "2026-08-25", 305)

		updated, err := svc.RefreshLatestPrices()
		testutil.AssertNoError(t, err)
		if updated != 2 {
			t.Errorf("expected 2 holdings updated, got %d", updated)
		}

		var aapl models.Holding
		ledger.Where("symbol = ?", "AAPL").First(&aapl)
		if aapl.LatestPrice == nil || *aapl.LatestPrice != 104 {
			t.Errorf("expected latest close 104, got %v", aapl.LatestPrice)
		}
	})

	t.Run("skips_symbols_without_data", func(t *testing.T) {
		svc, ledger, _ := setupHoldingService(t)
		testutil.CreateTestHolding(t, ledger, "AAPL", "Broker A", 10, 100)

		updated, err := svc.RefreshLatestPrices()
		testutil.AssertNoError(t, err)
		if updated != 0 {
			t.Errorf("expected nothing updated, got %d", updated)
		}

		var stored models.Holding
		ledger.Where("symbol = ?", "AAPL").First(&stored)
		if stored.LatestPrice != nil {
			t.Errorf("expected latest price untouched, got %v", *stored.LatestPrice)
		}
	})

	t.Run("skips_non_stock", func(t *testing.T) {
		svc, ledger, stocks := setupHoldingService(t)
		manual := testutil.CreateTestHolding(t, ledger, models.NonStockSymbol, "Broker A", 1, 5000)
		testutil.CreateTestPriceRecord(t, stocks, "AAPL", "2026-08-25", 104)

		updated, err := svc.RefreshLatestPrices()
		testutil.AssertNoError(t, err)
		if updated != 0 {
			t.Errorf("expected nothing updated, got %d", updated)
		}

		var stored models.Holding
		ledger.First(&stored, manual.ID)
		if stored.LatestPrice != nil {
			t.Errorf("manual valuation must not be refreshed, got %v", *stored.LatestPrice)
		}
	})
}

func TestAggregatedHoldings(t *testing.T) {
	svc, ledger, stocks := setupHoldingService(t)
	testutil.CreateTestHolding(t, ledger, "AAPL", "Broker A", 5, 50)
	testutil.CreateTestHolding(t, ledger, "AAPL", "Broker B", 5, 60)
	testutil.CreateTestHolding(t, ledger, models.NonStockSymbol, "Broker A", 1, 5000)
	testutil.CreateTestPriceRecord(t, stocks, "AAPL", "2026-08-25", 60)

	_, err := svc.RefreshLatestPrices()
	testutil.AssertNoError(t, err)

	aggs, err := svc.AggregatedHoldings()
	testutil.AssertNoError(t, err)
	if len(aggs) != 1 {
		t.Fatalf("expected 1 aggregate, got %d", len(aggs))
	}

	agg := aggs[0]
	if agg.Symbol != "AAPL" {
		t.Errorf("expected AAPL, got %s", agg.Symbol)
	}
	if agg.TotalShares != 10 {
		t.Errorf("expected 10 shares, got %f", agg.TotalShares)
	}
	if agg.AveragePrice != 55 {
		t.Errorf("expected blended average 55, got %f", agg.AveragePrice)
	}
	if agg.MarketValue != 600 {
		t.Errorf("expected market value 600, got %f", agg.MarketValue)
	}
	if agg.LatestPrice != 60 {
		t.Errorf("expected latest price 60, got %f", agg.LatestPrice)
	}
}
