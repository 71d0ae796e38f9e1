package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "investmon/internal/errors"
	"investmon/internal/pagination"
	"investmon/internal/services"
)

// InvestmentHandler handles investment and transaction requests.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService}
}

// CreateInvestmentRequest represents the request payload for creating an investment.
type CreateInvestmentRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=100"`
	Platform      string  `json:"platform" binding:"required,max=100"`
	AccountName   string  `json:"account_name" binding:"required,max=100"`
	Type          string  `json:"type" binding:"required,max=50"`
	InitialAmount float64 `json:"initial_amount" binding:"gte=0"`
}

// UpdateInvestmentRequest represents the request payload for editing an investment.
type UpdateInvestmentRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Platform    string `json:"platform" binding:"required,max=100"`
	AccountName string `json:"account_name" binding:"required,max=100"`
	Type        string `json:"type" binding:"required,max=50"`
}

// UpdateActualAmountRequest represents the request payload for setting the
// user-entered current valuation.
type UpdateActualAmountRequest struct {
	ActualAmount float64 `json:"actual_amount" binding:"gte=0"`
}

// AddTransactionRequest represents the request payload for adding a transaction.
// Amount is signed: withdrawals are negative.
type AddTransactionRequest struct {
	Date   string  `json:"date" binding:"required,dateonly"`
	Amount float64 `json:"amount" binding:"required"`
	Notes  string  `json:"notes" binding:"max=200"`
}

// CreateInvestment handles creating a new investment. A nonzero initial
// amount also records an accompanying "Initial investment" transaction.
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.CreateInvestment(req.Name, req.Platform, req.AccountName, req.Type, req.InitialAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"investment": investment})
}

// ListInvestments handles listing all investments.
func (h *InvestmentHandler) ListInvestments(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.investmentService.ListInvestments(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetInvestment handles retrieving a single investment.
func (h *InvestmentHandler) GetInvestment(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.investmentService.GetInvestmentByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// UpdateInvestment handles editing an investment's descriptive fields.
func (h *InvestmentHandler) UpdateInvestment(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.UpdateInvestment(id, req.Name, req.Platform, req.AccountName, req.Type)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// UpdateActualAmount handles setting the user-entered current valuation.
func (h *InvestmentHandler) UpdateActualAmount(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateActualAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.UpdateActualAmount(id, req.ActualAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// DeleteInvestment handles deleting an investment and all of its transactions.
func (h *InvestmentHandler) DeleteInvestment(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.investmentService.DeleteInvestment(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// AddTransaction handles recording a cash movement against an investment.
func (h *InvestmentHandler) AddTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.investmentService.AddTransaction(id, req.Date, req.Amount, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ListTransactions handles listing an investment's transactions.
func (h *InvestmentHandler) ListTransactions(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.investmentService.GetTransactions(id, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
