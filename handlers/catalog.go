package handlers

import (
	"net/http"

	categoryRepo "portal/database/repository/category"
	"portal/services/stats"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CategoryHandler handles GET /api/categories.
type CategoryHandler struct {
	Repo categoryRepo.CategoryRepository
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.Repo.List(c.Request.Context())
	if err != nil {
		getLogger(c).Error("ListCategories: lookup failed", zap.Error(err))
		message(c, http.StatusInternalServerError, "Error fetching categories")
		return
	}
	c.JSON(http.StatusOK, nonNil(categories))
}

// StatsHandler handles GET /api/platform-stats.
type StatsHandler struct {
	Svc stats.StatsService
}

func (h *StatsHandler) GetPlatformStats(c *gin.Context) {
	platformStats, err := h.Svc.Get(c.Request.Context())
	if err != nil {
		getLogger(c).Error("GetPlatformStats: computation failed", zap.Error(err))
		message(c, http.StatusInternalServerError, "Error fetching platform stats")
		return
	}
	c.JSON(http.StatusOK, platformStats)
}
