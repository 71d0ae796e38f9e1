package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"investmon/internal/config"
	apperrors "investmon/internal/errors"
)

// ThemeHandler handles the UI theme preference cookie.
type ThemeHandler struct {
	cfg *config.Config
}

// NewThemeHandler creates a new ThemeHandler.
func NewThemeHandler(cfg *config.Config) *ThemeHandler {
	return &ThemeHandler{cfg: cfg}
}

// SetThemeRequest represents the request payload for setting the theme.
type SetThemeRequest struct {
	Theme string `json:"theme" binding:"required,theme"`
}

// SetTheme stores the chosen theme in a cookie with a 30-day expiry.
func (h *ThemeHandler) SetTheme(c *gin.Context) {
	var req SetThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	c.SetCookie("theme", req.Theme, h.cfg.ThemeCookieMaxAge, "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}
