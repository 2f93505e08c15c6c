package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"youapp-client/internal/domain"
	"youapp-client/internal/service"
)

// ProfileHandler expone el perfil de la cuenta autenticada.
type ProfileHandler struct {
	logger   *zap.Logger
	profiles *service.ProfileRecordService
}

func NewProfileHandler(logger *zap.Logger, profiles *service.ProfileRecordService) *ProfileHandler {
	return &ProfileHandler{
		logger:   logger,
		profiles: profiles,
	}
}

// GetProfile maneja GET /api/getProfile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	profile, err := h.profiles.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		h.writeError(c, "get profile failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile has been found successfully", "data": profile})
}

// CreateProfile maneja POST /api/createProfile.
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req domain.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create profile request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.profiles.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		h.writeError(c, "create profile failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Profile has been created successfully", "data": profile})
}

// UpdateProfile maneja PUT /api/updateProfile. Solo cambian los campos presentes.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req domain.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update profile request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), claims.UserID, req)
	if err != nil {
		h.writeError(c, "update profile failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile has been updated successfully", "data": profile})
}

func (h *ProfileHandler) writeError(c *gin.Context, logMsg string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, verr.Messages)
	case errors.Is(err, service.ErrProfileExists):
		respondError(c, http.StatusConflict, "Profile already exists")
	case errors.Is(err, pgx.ErrNoRows):
		respondError(c, http.StatusNotFound, "User not found")
	default:
		h.logger.Error(logMsg, zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not process profile")
	}
}
