package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"investmon/internal/services"
)

// PriceHandler handles market data requests.
type PriceHandler struct {
	priceService services.PriceServicer
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(priceService services.PriceServicer) *PriceHandler {
	return &PriceHandler{priceService: priceService}
}

// GetMarketOverview returns all symbols at the most recent date with their
// day-over-day change percentages.
func (h *PriceHandler) GetMarketOverview(c *gin.Context) {
	overview, err := h.priceService.MarketOverview()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// GetSymbols returns all distinct symbols in the price store.
func (h *PriceHandler) GetSymbols(c *gin.Context) {
	symbols, err := h.priceService.Symbols()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"symbols": symbols})
}

// GetSymbolDetail returns a symbol's latest record, full price history, and
// range statistics.
func (h *PriceHandler) GetSymbolDetail(c *gin.Context) {
	symbol := c.Param("symbol")

	detail, err := h.priceService.SymbolDetail(symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}
