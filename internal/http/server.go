package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nbagirov/tapreflex/internal/infrastructure/auth"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/nbagirov/tapreflex/internal/http/handlers"
	"github.com/nbagirov/tapreflex/internal/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Server represents the HTTP server
type Server struct {
	router             *gin.Engine
	jwtService         auth.JWTService
	authHandler        *handlers.AuthHandler
	profileHandler     *handlers.ProfileHandler
	roundHandler       *handlers.RoundHandler
	leaderboardHandler *handlers.LeaderboardHandler
	errorHandler       *middleware.ErrorHandler
	port               string
}

// NewServer creates a new HTTP server
func NewServer(
	jwtService auth.JWTService,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	roundHandler *handlers.RoundHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	errorHandler *middleware.ErrorHandler,
	log *logger.Logger,
	port string,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(errorHandler.RequestIDMiddleware())
	router.Use(errorHandler.TimeoutMiddleware(30 * time.Second))
	router.Use(errorHandler.ErrorHandlerMiddleware())
	router.Use(middleware.LoggerMiddleware(log))

	server := &Server{
		router:             router,
		jwtService:         jwtService,
		authHandler:        authHandler,
		profileHandler:     profileHandler,
		roundHandler:       roundHandler,
		leaderboardHandler: leaderboardHandler,
		errorHandler:       errorHandler,
		port:               port,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.router.Group("/api/v1")
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/signup", s.authHandler.SignUp)
			authRoutes.POST("/login", s.authHandler.Login)
		}

		protected := v1.Group("/")
		protected.Use(middleware.JWTMiddleware(s.jwtService))
		{
			userRoutes := protected.Group("/users")
			{
				userRoutes.GET("/me", s.profileHandler.GetProfile)
				userRoutes.PATCH("/me", s.profileHandler.UpdateProfile)
				userRoutes.GET("/me/history", s.profileHandler.History)
			}

			roundRoutes := protected.Group("/rounds")
			{
				roundRoutes.POST("", s.roundHandler.StartRound)
				roundRoutes.POST("/hit", s.roundHandler.Hit)
				roundRoutes.POST("/miss", s.roundHandler.Miss)
				roundRoutes.GET("/current", s.roundHandler.Current)
			}

			leaderboardRoutes := protected.Group("/leaderboard")
			{
				leaderboardRoutes.GET("", s.leaderboardHandler.Ranking)
				leaderboardRoutes.GET("/score", s.leaderboardHandler.TopByScore)
			}

			playerRoutes := protected.Group("/players")
			{
				playerRoutes.GET("/search", s.leaderboardHandler.Search)
			}
		}
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.port)
	return s.router.Run(addr)
}
