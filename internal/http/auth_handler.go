package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"youapp-client/internal/domain"
	"youapp-client/internal/service"
)

// AuthHandler expone register, login y logout.
type AuthHandler struct {
	logger   *zap.Logger
	accounts *service.AccountService
}

func NewAuthHandler(logger *zap.Logger, accounts *service.AccountService) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		accounts: accounts,
	}
}

// Register maneja POST /api/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.accounts.Register(c.Request.Context(), req); err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			respondError(c, http.StatusBadRequest, verr.Messages)
		case errors.Is(err, service.ErrAccountExists):
			respondError(c, http.StatusBadRequest, "User already exists")
		default:
			h.logger.Error("register failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "could not register user")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User has been created successfully"})
}

// Login maneja POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.accounts.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, service.ErrRateLimited):
			respondError(c, http.StatusTooManyRequests, "Too many login attempts")
		default:
			h.logger.Error("login failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "could not log in")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "User has been logged in successfully",
		"access_token": token,
	})
}

// Logout maneja POST /api/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := h.accounts.Logout(c.Request.Context(), claims); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not log out")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User has been logged out successfully"})
}
