package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// LeaderboardHandler handles HTTP requests for ranking and search operations
type LeaderboardHandler struct {
	leaderboardUseCase domain.LeaderboardUseCase
	logger             *logger.Logger
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardUseCase domain.LeaderboardUseCase, logger *logger.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardUseCase: leaderboardUseCase,
		logger:             logger,
	}
}

// Ranking handles the leaderboard views
// @Summary Get leaderboard
// @Description Rank players by average tap time, or by best time at one difficulty when level is given
// @Tags leaderboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param level query int false "Difficulty filter (10, 20, 30, 40 or 50)"
// @Param limit query int false "Maximum entries to return" default(50)
// @Success 200 {array} domain.LeaderboardEntry
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /leaderboard [get]
func (h *LeaderboardHandler) Ranking(c *gin.Context) {
	limit := parseLimit(c, 0)

	levelRaw := c.Query("level")
	if levelRaw == "" {
		entries, err := h.leaderboardUseCase.GlobalRanking(limit)
		if err != nil {
			h.logger.Error("Global ranking failed", zap.Error(err))
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
		return
	}

	level, err := strconv.Atoi(levelRaw)
	if err != nil {
		respondError(c, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid level parameter", 400, err))
		return
	}

	difficulty, err := domain.ParseDifficulty(level)
	if err != nil {
		respondError(c, err)
		return
	}

	entries, err := h.leaderboardUseCase.DifficultyRanking(difficulty, limit)
	if err != nil {
		h.logger.Error("Difficulty ranking failed", zap.Int("level", level), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// TopByScore handles the raw score export
// @Summary Get top players by total score
// @Description List players ordered by total score descending
// @Tags leaderboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum entries to return" default(50)
// @Success 200 {array} domain.PlayerSummary
// @Failure 401 {object} ErrorResponse
// @Router /leaderboard/score [get]
func (h *LeaderboardHandler) TopByScore(c *gin.Context) {
	limit := parseLimit(c, 0)

	players, err := h.leaderboardUseCase.TopByTotalScore(limit)
	if err != nil {
		h.logger.Error("Top by score failed", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, players)
}

// Search handles player lookup by nickname or public id prefix
// @Summary Search players
// @Description Find players whose nickname or public id starts with the given term
// @Tags leaderboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search term; a leading # is stripped"
// @Param limit query int false "Maximum matches to return" default(20)
// @Success 200 {array} domain.PlayerSummary
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /players/search [get]
func (h *LeaderboardHandler) Search(c *gin.Context) {
	term := c.Query("q")
	limit := parseLimit(c, 0)

	players, err := h.leaderboardUseCase.SearchPlayers(term, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, players)
}
