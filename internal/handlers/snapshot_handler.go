package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "investmon/internal/errors"
	"investmon/internal/pagination"
	"investmon/internal/services"
)

// SnapshotHandler handles portfolio and account snapshot requests.
type SnapshotHandler struct {
	snapshotService services.SnapshotServicer
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(snapshotService services.SnapshotServicer) *SnapshotHandler {
	return &SnapshotHandler{snapshotService: snapshotService}
}

// SavePortfolioSnapshotRequest represents the request payload for saving a
// portfolio-level snapshot.
type SavePortfolioSnapshotRequest struct {
	TotalInvested float64 `json:"total_invested" binding:"gte=0"`
	CurrentValue  float64 `json:"current_value" binding:"gte=0"`
	ProfitLoss    float64 `json:"profit_loss"`
	ProfitLossPct float64 `json:"profit_loss_pct"`
}

// AccountSnapshotPayload is one account's row in a batch snapshot save.
type AccountSnapshotPayload struct {
	AccountName   string  `json:"account_name" binding:"required,max=100"`
	Goal          string  `json:"goal" binding:"max=100"`
	Platform      string  `json:"platform" binding:"max=100"`
	Type          string  `json:"type" binding:"max=50"`
	TotalInvested float64 `json:"total_invested" binding:"gte=0"`
	CurrentValue  float64 `json:"current_value" binding:"gte=0"`
	ProfitLoss    float64 `json:"profit_loss"`
	ProfitLossPct float64 `json:"profit_loss_pct"`
}

// SaveAccountSnapshotsRequest represents the request payload for saving one
// snapshot row per account.
type SaveAccountSnapshotsRequest struct {
	Accounts []AccountSnapshotPayload `json:"accounts" binding:"required,min=1,dive"`
}

// SavePortfolioSnapshot handles recording a portfolio snapshot.
func (h *SnapshotHandler) SavePortfolioSnapshot(c *gin.Context) {
	var req SavePortfolioSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	snapshot, err := h.snapshotService.SavePortfolioSnapshot(req.TotalInvested, req.CurrentValue, req.ProfitLoss, req.ProfitLossPct)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"id":     snapshot.ID,
		"date":   snapshot.Date.Format("2006-01-02 15:04"),
	})
}

// ListPortfolioSnapshots handles listing portfolio snapshots, newest first.
func (h *SnapshotHandler) ListPortfolioSnapshots(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.snapshotService.ListPortfolioSnapshots(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeletePortfolioSnapshot handles deleting one portfolio snapshot.
func (h *SnapshotHandler) DeletePortfolioSnapshot(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.snapshotService.DeletePortfolioSnapshot(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// SaveAccountSnapshots handles recording one snapshot row per account.
func (h *SnapshotHandler) SaveAccountSnapshots(c *gin.Context) {
	var req SaveAccountSnapshotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	inputs := make([]services.AccountSnapshotInput, 0, len(req.Accounts))
	for _, a := range req.Accounts {
		inputs = append(inputs, services.AccountSnapshotInput{
			AccountName:   a.AccountName,
			Goal:          a.Goal,
			Platform:      a.Platform,
			Type:          a.Type,
			TotalInvested: a.TotalInvested,
			CurrentValue:  a.CurrentValue,
			ProfitLoss:    a.ProfitLoss,
			ProfitLossPct: a.ProfitLossPct,
		})
	}

	saved, savedAt, err := h.snapshotService.SaveAccountSnapshots(inputs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"saved":  saved,
		"date":   savedAt.Format("2006-01-02 15:04"),
	})
}

// ListAccountSnapshots handles listing account snapshots, optionally
// filtered to one account name.
func (h *SnapshotHandler) ListAccountSnapshots(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.snapshotService.ListAccountSnapshots(c.Query("account"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteAccountSnapshot handles deleting one account snapshot.
func (h *SnapshotHandler) DeleteAccountSnapshot(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.snapshotService.DeleteAccountSnapshot(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// BulkDeleteAccountSnapshots handles deleting account snapshots by account
// name and/or calendar day. Both filters are ANDed when present.
func (h *SnapshotHandler) BulkDeleteAccountSnapshots(c *gin.Context) {
	date := c.Query("date")
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date, expected YYYY-MM-DD"))
			return
		}
	}

	deleted, err := h.snapshotService.BulkDeleteAccountSnapshots(c.Query("account"), date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "deleted": deleted})
}

// GetAccountNames handles listing distinct account names with snapshot history.
func (h *SnapshotHandler) GetAccountNames(c *gin.Context) {
	accounts, err := h.snapshotService.AccountNames()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}
