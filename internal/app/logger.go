package app

import (
	"github.com/nbagirov/tapreflex/internal/config"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
)

// InitLogger creates a new logger instance
func (a *application) InitLogger() *logger.Logger {
	return logger.NewLogger(config.GetEnvironment(), a.config.Log.Level)
}
