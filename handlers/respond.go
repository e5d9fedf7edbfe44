package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"portal/database/repository"
	"portal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OwnerAuthorizer checks the verified identity against a resource owner and
// writes the rejection itself.
type OwnerAuthorizer interface {
	AuthorizeOwner(c *gin.Context, owner string) bool
}

// StatsRefresher schedules a statistics recomputation after a write.
type StatsRefresher interface {
	RequestRefresh(ctx context.Context) error
}

// message writes {"message": msg}. Error statuses also abort the chain.
func message(c *gin.Context, status int, msg string) {
	if status >= http.StatusBadRequest {
		utils.JSONError(c, status, msg)
		return
	}
	c.JSON(status, gin.H{"message": msg})
}

// respondRepoError maps repository failures onto the HTTP taxonomy.
// Unexpected errors are returned verbatim.
func respondRepoError(c *gin.Context, err error, invalidMsg, notFoundMsg string) {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		message(c, http.StatusBadRequest, invalidMsg)
	case errors.Is(err, repository.ErrNotFound):
		message(c, http.StatusNotFound, notFoundMsg)
	default:
		getLogger(c).Error("repository call failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		message(c, http.StatusInternalServerError, err.Error())
	}
}

func requestRefresh(c *gin.Context, refresher StatsRefresher) {
	if refresher == nil {
		return
	}
	if err := refresher.RequestRefresh(c.Request.Context()); err != nil {
		getLogger(c).Warn("stats refresh not scheduled", zap.Error(err))
	}
}

// parseLimit returns 0 (no limit) for anything but a non-negative integer.
func parseLimit(raw string) int64 {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
