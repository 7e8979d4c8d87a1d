package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "local-auth-service/internal/domain/theme"
	"local-auth-service/internal/usecase/theme"
	apperrors "local-auth-service/pkg/errors"
	"local-auth-service/pkg/logger"
)

// ThemeHandler handles HTTP requests for the theme preference
type ThemeHandler struct {
	uc  theme.Service
	log *zap.Logger
}

// NewThemeHandler creates a new ThemeHandler instance
func NewThemeHandler(uc theme.Service, log *zap.Logger) *ThemeHandler {
	return &ThemeHandler{uc: uc, log: log}
}

// ThemeRequest is the body of PUT /v1/theme
type ThemeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// ThemeResponse describes the current theme mode
type ThemeResponse struct {
	Mode   string `json:"mode"`
	IsDark bool   `json:"is_dark"`
}

func toThemeResponse(m domain.Mode) ThemeResponse {
	return ThemeResponse{Mode: string(m), IsDark: m.IsDark()}
}

// Get handles GET /v1/theme
func (h *ThemeHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, toThemeResponse(h.uc.Get(c.Request.Context())))
}

// Set handles PUT /v1/theme
func (h *ThemeHandler) Set(c *gin.Context) {
	var req ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_body",
			Message: err.Error(),
		})
		return
	}

	mode, err := domain.ParseMode(req.Mode)
	if err != nil {
		writeError(c, apperrors.NewValidationError("mode", err.Error()))
		return
	}

	if err := h.uc.Set(c.Request.Context(), mode); err != nil {
		logger.WithContext(c.Request.Context(), h.log).Error("Set theme failed", zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toThemeResponse(mode))
}

// Toggle handles POST /v1/theme/toggle
func (h *ThemeHandler) Toggle(c *gin.Context) {
	mode, err := h.uc.Toggle(c.Request.Context())
	if err != nil {
		logger.WithContext(c.Request.Context(), h.log).Error("Toggle theme failed", zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toThemeResponse(mode))
}
