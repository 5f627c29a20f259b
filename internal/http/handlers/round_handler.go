package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// RoundHandler handles HTTP requests for round lifecycle operations
type RoundHandler struct {
	roundUseCase domain.RoundUseCase
	logger       *logger.Logger
}

// NewRoundHandler creates a new round handler
func NewRoundHandler(roundUseCase domain.RoundUseCase, logger *logger.Logger) *RoundHandler {
	return &RoundHandler{
		roundUseCase: roundUseCase,
		logger:       logger,
	}
}

// StartRoundRequest represents the round start request body
type StartRoundRequest struct {
	Level int `json:"level" binding:"required" example:"10"`
}

// StartRound handles starting a new round
// @Summary Start a round
// @Description Start a new round at the given difficulty, replacing any round in progress
// @Tags rounds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body StartRoundRequest true "Round difficulty"
// @Success 201 {object} domain.RoundSnapshot
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /rounds [post]
func (h *RoundHandler) StartRound(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	var req StartRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid request body", 400, err))
		return
	}

	difficulty, err := domain.ParseDifficulty(req.Level)
	if err != nil {
		respondError(c, err)
		return
	}

	snapshot, err := h.roundUseCase.Start(userID, difficulty)
	if err != nil {
		h.logger.Error("Start round failed", zap.String("user_id", userID), zap.Int("level", req.Level), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, snapshot)
}

// Hit handles a successful tap on the current target
// @Summary Register a hit
// @Description Register a tap on the current target; finishes the round on the last target
// @Tags rounds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.RoundSnapshot
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /rounds/hit [post]
func (h *RoundHandler) Hit(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	snapshot, err := h.roundUseCase.Hit(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// Miss handles a tap that missed the target
// @Summary Register a miss
// @Description Register a tap outside the current target
// @Tags rounds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.RoundSnapshot
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /rounds/miss [post]
func (h *RoundHandler) Miss(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	snapshot, err := h.roundUseCase.Miss(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// Current handles reading the state of the active round
// @Summary Get current round
// @Description Get a snapshot of the authenticated player's active round
// @Tags rounds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.RoundSnapshot
// @Failure 401 {object} ErrorResponse
// @Router /rounds/current [get]
func (h *RoundHandler) Current(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	snapshot, err := h.roundUseCase.Current(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
