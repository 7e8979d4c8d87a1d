package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"local-auth-service/internal/usecase/auth"
	apperrors "local-auth-service/pkg/errors"
	"local-auth-service/pkg/logger"
)

// AuthHandler handles HTTP requests for signup, login and session operations
type AuthHandler struct {
	uc  auth.Service
	log *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(uc auth.Service, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		uc:  uc,
		log: log,
	}
}

// SignupRequest represents the HTTP request body for signing up
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the HTTP request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func toUserResponse(u *auth.UserResponse) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// Signup handles POST /v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid signup request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_body",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.uc.Signup(c.Request.Context(), auth.SignupRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		log.Warn("Signup failed", zap.String("email", req.Email), zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(resp))
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_body",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.uc.Login(c.Request.Context(), auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		log.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(resp))
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.uc.Logout(c.Request.Context()); err != nil {
		logger.WithContext(c.Request.Context(), h.log).Error("Logout failed", zap.Error(err))
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Me handles GET /v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	u := h.uc.GetCurrentUser(c.Request.Context())
	if u == nil {
		writeError(c, apperrors.ErrNoSession)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(u))
}

// writeError maps typed application errors to status codes. Anything else,
// storage write failures included, becomes a generic 500.
func writeError(c *gin.Context, err error) {
	var statuser apperrors.HTTPStatuser
	if !errors.As(err, &statuser) {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
		return
	}

	status := statuser.HTTPStatus()
	code := "internal_error"
	message := err.Error()
	switch status {
	case http.StatusBadRequest:
		code = "invalid_input"
	case http.StatusUnauthorized:
		code = "invalid_credentials"
	case http.StatusNotFound:
		code = "not_found"
	case http.StatusConflict:
		code = "already_exists"
	default:
		message = "An internal error occurred"
	}

	c.JSON(status, ErrorResponse{
		Error:   code,
		Message: message,
	})
}
