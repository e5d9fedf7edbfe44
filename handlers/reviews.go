package handlers

import (
	"net/http"

	"portal/database/repository"
	reviewRepo "portal/database/repository/review"
	"portal/models"
	"portal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	invalidReviewID = "Invalid review ID"
	reviewNotFound  = "Review not found"
)

// ReviewHandler serves the review endpoints.
type ReviewHandler struct {
	Repo  reviewRepo.ReviewRepository
	Authz OwnerAuthorizer
	Stats StatsRefresher
}

// GetReviewsByReviewer handles GET /api/reviews/:email.
func (h *ReviewHandler) GetReviewsByReviewer(c *gin.Context) {
	reviews, err := h.Repo.ListByReviewer(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondRepoError(c, err, invalidReviewID, reviewNotFound)
		return
	}
	c.JSON(http.StatusOK, nonNil(reviews))
}

// GetReviewsByService handles GET /api/reviews/service/:serviceId.
func (h *ReviewHandler) GetReviewsByService(c *gin.Context) {
	reviews, err := h.Repo.ListByService(c.Request.Context(), c.Param("serviceId"))
	if err != nil {
		respondRepoError(c, err, invalidReviewID, reviewNotFound)
		return
	}
	c.JSON(http.StatusOK, nonNil(reviews))
}

// CreateReview handles POST /api/reviews.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	logger := getLogger(c)

	var input models.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Debug("CreateReview: invalid request body", zap.Error(err))
		message(c, http.StatusBadRequest, utils.BindingMessage(err))
		return
	}
	if !h.Authz.AuthorizeOwner(c, input.ReviewerEmail) {
		return
	}

	review := input.ToReview()
	id, err := h.Repo.Create(c.Request.Context(), &review)
	if err != nil {
		respondRepoError(c, err, invalidReviewID, reviewNotFound)
		return
	}

	logger.Info("CreateReview: review posted", zap.String("id", id.Hex()), zap.String("serviceId", review.ServiceID))
	requestRefresh(c, h.Stats)
	c.JSON(http.StatusCreated, models.InsertResult{Acknowledged: true, InsertedID: id.Hex()})
}

// UpdateReview handles PATCH /api/reviews/:id.
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id := c.Param("id")
	if _, err := repository.ParseID(id); err != nil {
		message(c, http.StatusBadRequest, invalidReviewID)
		return
	}

	var update models.ReviewUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		message(c, http.StatusBadRequest, utils.BindingMessage(err))
		return
	}
	if update.Empty() {
		message(c, http.StatusBadRequest, "Nothing to update")
		return
	}

	existing, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, invalidReviewID, reviewNotFound)
		return
	}
	if !h.Authz.AuthorizeOwner(c, existing.ReviewerEmail) {
		return
	}

	if err := h.Repo.Update(c.Request.Context(), id, update); err != nil {
		respondRepoError(c, err, invalidReviewID, reviewNotFound)
		return
	}
	message(c, http.StatusOK, "Review updated successfully")
}

// DeleteReview handles DELETE /api/reviews/:id.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id := c.Param("id")

	existing, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, invalidReviewID, reviewNotFound)
		return
	}
	if !h.Authz.AuthorizeOwner(c, existing.ReviewerEmail) {
		return
	}

	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, err, invalidReviewID, reviewNotFound)
		return
	}

	getLogger(c).Info("DeleteReview: review removed", zap.String("id", id))
	requestRefresh(c, h.Stats)
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted", "deletedCount": 1})
}
