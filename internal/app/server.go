package app

import (
	"github.com/nbagirov/tapreflex/internal/http"
	"github.com/nbagirov/tapreflex/internal/http/handlers"
	"github.com/nbagirov/tapreflex/internal/http/middleware"
	"github.com/nbagirov/tapreflex/internal/infrastructure/auth"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
)

// InitHTTPServer initializes the HTTP server with all dependencies
func (a *application) InitHTTPServer(
	jwtService auth.JWTService,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	roundHandler *handlers.RoundHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	errorHandler *middleware.ErrorHandler,
	logger *logger.Logger,
) *http.Server {
	port := a.config.Server.Port
	if port == "" {
		port = "8080" // default port
	}

	return http.NewServer(jwtService, authHandler, profileHandler, roundHandler, leaderboardHandler, errorHandler, logger, port)
}
