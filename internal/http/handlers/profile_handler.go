package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ProfileHandler handles HTTP requests for player profile operations
type ProfileHandler struct {
	profileUseCase domain.ProfileUseCase
	logger         *logger.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileUseCase domain.ProfileUseCase, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		logger:         logger,
	}
}

// UpdateProfileRequest represents the profile update request body
type UpdateProfileRequest struct {
	Nickname *string `json:"nickname" example:"Aurora"`
}

// GetProfile handles getting the authenticated player's profile
// @Summary Get own profile
// @Description Get the authenticated player's aggregate profile
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.UserProfile
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/me [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileUseCase.GetProfile(userID)
	if err != nil {
		h.logger.Error("Get profile failed", zap.String("user_id", userID), zap.Error(err))
		respondError(c, err)
		return
	}

	if profile == nil {
		respondError(c, domain.NewAppError(domain.ErrCodeProfileNotFound, "Profile not found", 404, nil))
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles partial profile updates
// @Summary Update own profile
// @Description Update mutable fields of the authenticated player's profile
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} domain.UserProfile
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/me [patch]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid request body", 400, err))
		return
	}

	profile, err := h.profileUseCase.UpdateProfile(userID, domain.ProfileUpdates{Nickname: req.Nickname})
	if err != nil {
		h.logger.Error("Update profile failed", zap.String("user_id", userID), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// History handles listing the authenticated player's recent rounds
// @Summary Get round history
// @Description List the authenticated player's finished rounds, most recent first
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum entries to return" default(50)
// @Success 200 {array} domain.HistoryEntry
// @Failure 401 {object} ErrorResponse
// @Router /users/me/history [get]
func (h *ProfileHandler) History(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	limit := parseLimit(c, 0)

	entries, err := h.profileUseCase.History(userID, limit)
	if err != nil {
		h.logger.Error("Get history failed", zap.String("user_id", userID), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// parseLimit reads the optional limit query parameter, returning fallback when
// absent or malformed.
func parseLimit(c *gin.Context, fallback int) int {
	raw := c.Query("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
