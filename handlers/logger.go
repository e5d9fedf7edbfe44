package handlers

import (
	"portal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request scoped Zap logger from the Gin context.
func getLogger(c *gin.Context) *zap.Logger {
	return middleware.LoggerFromContext(c)
}
