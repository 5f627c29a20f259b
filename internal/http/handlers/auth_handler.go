package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests for account operations
type AuthHandler struct {
	authUseCase domain.AuthUseCase
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUseCase domain.AuthUseCase, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// SignUpRequest represents the registration request body
type SignUpRequest struct {
	Email    string `json:"email" binding:"required" example:"player@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
	Nickname string `json:"nickname" binding:"required" example:"Aurora"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"player@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// AuthResponse represents the authentication response body
type AuthResponse struct {
	Token   string              `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Profile *domain.UserProfile `json:"profile"`
}

// SignUp handles account registration
// @Summary Register a new player
// @Description Create an identity account and its game profile, returning a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Registration details"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid request body", 400, err))
		return
	}

	session, err := h.authUseCase.SignUp(req.Email, req.Password, req.Nickname)
	if err != nil {
		h.logger.Error("Sign up failed", zap.String("email", req.Email), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: session.Token, Profile: session.Profile})
}

// Login handles account authentication
// @Summary Player login
// @Description Authenticate against the identity provider and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid request body", 400, err))
		return
	}

	session, err := h.authUseCase.SignIn(req.Email, req.Password)
	if err != nil {
		h.logger.Error("Login failed", zap.String("email", req.Email), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: session.Token, Profile: session.Profile})
}

// ErrorResponse documents the error envelope every endpoint returns
type ErrorResponse struct {
	Error   *domain.AppError `json:"error"`
	Success bool             `json:"success" example:"false"`
}

// respondError writes an AppError in the standard envelope with its own HTTP
// status; anything else becomes a wrapped 500.
func respondError(c *gin.Context, err error) {
	if appErr, ok := domain.IsAppError(err); ok {
		c.JSON(appErr.HTTPStatus, domain.NewErrorResponse(appErr))
		return
	}
	c.JSON(http.StatusInternalServerError, domain.NewErrorResponse(domain.NewInternalError("", err)))
}

// getAuthenticatedUserID extracts the authenticated user ID from the context
func getAuthenticatedUserID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		respondError(c, domain.NewUnauthorizedError("User not authenticated"))
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		respondError(c, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid user ID format", 400, nil))
		return "", false
	}

	return userID, true
}
