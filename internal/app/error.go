package app

import (
	"github.com/nbagirov/tapreflex/internal/http/middleware"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
)

func (a *application) InitErrorHandler(logger *logger.Logger) *middleware.ErrorHandler {
	return middleware.NewErrorHandler(logger)
}
