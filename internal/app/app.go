package app

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/nbagirov/tapreflex/internal/config"
	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/nbagirov/tapreflex/internal/http"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
	"go.uber.org/fx"
)

// Application provides application level setup
type Application interface {
	Setup()
	GetContext() context.Context
}

// application represents context and configure file
type application struct {
	ctx    context.Context
	config *config.Config
}

// NewApplication creates a new application
func NewApplication(ctx context.Context) Application {
	return &application{ctx: ctx}
}

// GetContext returns application context
func (a *application) GetContext() context.Context {
	return a.ctx
}

// Setup creates a new fx application with all modules
func (a *application) Setup() {
	fmt.Println("[x] Starting Tap Reflex Service...")

	path := flag.String("e", "./config", "env file directory")
	flag.Parse()

	err := a.setupViper(*path)
	if err != nil {
		log.Panic(err.Error())
	}

	app := fx.New(
		fx.Provide(
			a.InitLogger,
			a.InitDatabase,
			a.InitRepository,
			a.InitJWTService,
			a.InitPlayerLockManager,
			a.InitIdentityProvider,
			a.InitProfileUseCase,
			a.InitLeaderboardUseCase,
			a.InitRoundUseCase,
			a.InitAuthUseCase,
			a.InitOutboxProcessor,
			a.InitAuthHandler,
			a.InitProfileHandler,
			a.InitRoundHandler,
			a.InitLeaderboardHandler,
			a.InitErrorHandler,
			a.InitHTTPServer,
		),
		fx.Invoke(a.registerHooks),
	)

	app.Run()
}

// registerHooks starts the HTTP server and background workers on startup and
// tears them down on shutdown.
func (a *application) registerHooks(
	lc fx.Lifecycle,
	server *http.Server,
	processor domain.OutboxProcessor,
	roundUC domain.RoundUseCase,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			processor.StartBackgroundProcessing()
			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("HTTP server stopped: " + err.Error())
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			roundUC.Shutdown()
			processor.StopBackgroundProcessing()
			return nil
		},
	})
}
