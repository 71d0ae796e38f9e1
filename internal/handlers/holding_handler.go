package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "investmon/internal/errors"
	"investmon/internal/services"
)

// HoldingHandler handles portfolio holding requests.
type HoldingHandler struct {
	holdingService services.HoldingServicer
}

// NewHoldingHandler creates a new HoldingHandler.
func NewHoldingHandler(holdingService services.HoldingServicer) *HoldingHandler {
	return &HoldingHandler{holdingService: holdingService}
}

// CreateHoldingRequest represents the request payload for adding a holding.
type CreateHoldingRequest struct {
	Symbol       string  `json:"symbol" binding:"required,min=1,max=10"`
	Shares       float64 `json:"shares" binding:"required,gt=0"`
	AveragePrice float64 `json:"average_price" binding:"required,gt=0"`
	Account      string  `json:"account" binding:"required,max=100"`
	InvestmentID *uint   `json:"investment_id"`
}

// UpdateHoldingRequest represents the request payload for editing a holding.
type UpdateHoldingRequest struct {
	Symbol       string  `json:"symbol" binding:"required,min=1,max=10"`
	Shares       float64 `json:"shares" binding:"required,gt=0"`
	AveragePrice float64 `json:"average_price" binding:"required,gt=0"`
	Account      string  `json:"account" binding:"required,max=100"`
	InvestmentID *uint   `json:"investment_id"`
}

// SetManualValueRequest represents the request payload for the NON-STOCK
// manual valuation of an account.
type SetManualValueRequest struct {
	Account     string  `json:"account" binding:"required,max=100"`
	MarketValue float64 `json:"market_value" binding:"required,gte=0"`
}

// CreateHolding handles adding a holding for a traded symbol.
func (h *HoldingHandler) CreateHolding(c *gin.Context) {
	var req CreateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	holding, err := h.holdingService.CreateHolding(req.Symbol, req.Shares, req.AveragePrice, req.Account, req.InvestmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"holding": holding})
}

// ListHoldings handles listing holdings with optional account/symbol
// filters. Pass exclude_non_stock=true to omit manually valued rows.
func (h *HoldingHandler) ListHoldings(c *gin.Context) {
	filter := services.HoldingFilter{
		Account: c.Query("account"),
		Symbol:  c.Query("symbol"),
	}
	if raw := c.Query("exclude_non_stock"); raw != "" {
		exclude, err := strconv.ParseBool(raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid exclude_non_stock"))
			return
		}
		filter.ExcludeNonStock = exclude
	}

	holdings, err := h.holdingService.ListHoldings(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holdings": holdings})
}

// GetHolding handles retrieving a single holding.
func (h *HoldingHandler) GetHolding(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	holding, err := h.holdingService.GetHoldingByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holding": holding})
}

// UpdateHolding handles editing a holding.
func (h *HoldingHandler) UpdateHolding(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	holding, err := h.holdingService.UpdateHolding(id, req.Symbol, req.Shares, req.AveragePrice, req.Account, req.InvestmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holding": holding})
}

// DeleteHolding handles removing a holding.
func (h *HoldingHandler) DeleteHolding(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.holdingService.DeleteHolding(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// SetManualValue handles creating or updating an account's NON-STOCK
// manual valuation.
func (h *HoldingHandler) SetManualValue(c *gin.Context) {
	var req SetManualValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	holding, err := h.holdingService.SetManualValue(req.Account, req.MarketValue)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holding": holding})
}

// RefreshPrices handles the explicit latest-price refresh pass over all
// traded holdings.
func (h *HoldingHandler) RefreshPrices(c *gin.Context) {
	updated, err := h.holdingService.RefreshLatestPrices()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// GetAggregatedHoldings handles the blended per-symbol portfolio view.
func (h *HoldingHandler) GetAggregatedHoldings(c *gin.Context) {
	aggregates, err := h.holdingService.AggregatedHoldings()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stocks": aggregates})
}
