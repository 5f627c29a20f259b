package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	logger *logger.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *logger.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// ErrorHandlerMiddleware provides centralized panic recovery for all requests
func (h *ErrorHandler) ErrorHandlerMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		h.handlePanic(c, recovered)
	})
}

// handlePanic handles panic recovery
func (h *ErrorHandler) handlePanic(c *gin.Context, recovered interface{}) {
	err := domain.NewInternalError("Internal server error", fmt.Errorf("panic: %v", recovered))
	h.tagRequest(c, err)

	h.logger.Error("Panic recovered",
		zap.String("request_id", err.RequestID),
		zap.String("user_id", err.UserID),
		zap.String("path", err.Path),
		zap.String("method", err.Method),
		zap.Any("panic", recovered),
		zap.String("stack", string(debug.Stack())),
	)

	c.JSON(http.StatusInternalServerError, domain.NewErrorResponse(err))
}

// tagRequest stamps request metadata onto an error for correlation
func (h *ErrorHandler) tagRequest(c *gin.Context, err *domain.AppError) {
	err.RequestID = requestIDFrom(c)
	if userID, exists := c.Get("user_id"); exists {
		err.UserID = userID.(string)
	}
	err.Path = c.Request.URL.Path
	err.Method = c.Request.Method
}

func requestIDFrom(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		return requestID.(string)
	}
	return uuid.NewString()
}

// RequestIDMiddleware adds a unique request ID to each request
func (h *ErrorHandler) RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// TimeoutMiddleware adds timeout context to requests
func (h *ErrorHandler) TimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		done := make(chan struct{})
		go func() {
			c.Next()
			done <- struct{}{}
		}()

		select {
		case <-done:
			return
		case <-ctx.Done():
			err := domain.NewAppError("TIMEOUT", "Request timeout", http.StatusRequestTimeout, ctx.Err())
			h.tagRequest(c, err)

			h.logger.Warn("Request timed out",
				zap.String("request_id", err.RequestID),
				zap.String("user_id", err.UserID),
				zap.String("path", err.Path),
				zap.String("method", err.Method),
			)

			c.Abort()
			c.JSON(http.StatusRequestTimeout, domain.NewErrorResponse(err))
			return
		}
	}
}
