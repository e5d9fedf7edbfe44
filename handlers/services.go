package handlers

import (
	"errors"
	"net/http"

	"portal/database/repository"
	serviceRepo "portal/database/repository/service"
	"portal/models"
	"portal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	invalidServiceID   = "Invalid service ID"
	serviceNotFound    = "Service not found"
	missingFields      = "Missing required fields"
	serviceUpdateError = "Failed to update service"
)

// ServiceHandler serves the service listing endpoints.
type ServiceHandler struct {
	Repo  serviceRepo.ServiceRepository
	Authz OwnerAuthorizer
	Stats StatsRefresher
}

// GetServicesByOwner handles GET /api/services/:email. The route policy has
// already matched the email against the session.
func (h *ServiceHandler) GetServicesByOwner(c *gin.Context) {
	services, err := h.Repo.ListByOwner(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondRepoError(c, err, invalidServiceID, serviceNotFound)
		return
	}
	c.JSON(http.StatusOK, nonNil(services))
}

// ListServices handles GET /api/services?limit=N.
func (h *ServiceHandler) ListServices(c *gin.Context) {
	services, err := h.Repo.List(c.Request.Context(), parseLimit(c.Query("limit")))
	if err != nil {
		respondRepoError(c, err, invalidServiceID, serviceNotFound)
		return
	}
	c.JSON(http.StatusOK, nonNil(services))
}

// SearchServices handles GET /api/allServices?search=&filter=.
func (h *ServiceHandler) SearchServices(c *gin.Context) {
	query := models.ServiceQuery{
		Search:   c.Query("search"),
		Category: c.Query("filter"),
	}
	services, err := h.Repo.Search(c.Request.Context(), query)
	if err != nil {
		respondRepoError(c, err, invalidServiceID, serviceNotFound)
		return
	}
	c.JSON(http.StatusOK, nonNil(services))
}

// GetServiceByID handles GET /services/:id.
func (h *ServiceHandler) GetServiceByID(c *gin.Context) {
	service, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepoError(c, err, invalidServiceID, serviceNotFound)
		return
	}
	c.JSON(http.StatusOK, service)
}

// CreateService handles POST /api/services. Only the owner named in the
// body may publish.
func (h *ServiceHandler) CreateService(c *gin.Context) {
	logger := getLogger(c)

	var input models.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Debug("CreateService: invalid request body", zap.Error(err))
		message(c, http.StatusBadRequest, utils.BindingMessage(err))
		return
	}
	if !h.Authz.AuthorizeOwner(c, input.UserEmail) {
		return
	}

	service := input.ToService()
	id, err := h.Repo.Create(c.Request.Context(), &service)
	if err != nil {
		respondRepoError(c, err, invalidServiceID, serviceNotFound)
		return
	}

	logger.Info("CreateService: service published", zap.String("id", id.Hex()), zap.String("owner", service.UserEmail))
	requestRefresh(c, h.Stats)
	c.JSON(http.StatusCreated, models.InsertResult{Acknowledged: true, InsertedID: id.Hex()})
}

// UpdateService handles PUT /api/services/:id.
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	if _, err := repository.ParseID(id); err != nil {
		message(c, http.StatusBadRequest, invalidServiceID)
		return
	}
	var update models.ServiceUpdate
	if err := c.ShouldBindJSON(&update); err != nil || !update.HasRequiredFields() {
		message(c, http.StatusBadRequest, missingFields)
		return
	}

	existing, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, invalidServiceID, serviceNotFound)
		return
	}
	if !h.Authz.AuthorizeOwner(c, existing.UserEmail) {
		return
	}

	if err := h.Repo.Update(c.Request.Context(), id, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			message(c, http.StatusNotFound, serviceNotFound)
			return
		}
		logger.Error("UpdateService: update failed", zap.String("id", id), zap.Error(err))
		message(c, http.StatusInternalServerError, serviceUpdateError)
		return
	}
	message(c, http.StatusOK, "Service updated successfully")
}

// DeleteService handles DELETE /api/services/:id. Reviews of the service are
// kept.
func (h *ServiceHandler) DeleteService(c *gin.Context) {
	id := c.Param("id")

	existing, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, invalidServiceID, serviceNotFound)
		return
	}
	if !h.Authz.AuthorizeOwner(c, existing.UserEmail) {
		return
	}

	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, err, invalidServiceID, serviceNotFound)
		return
	}

	getLogger(c).Info("DeleteService: service removed", zap.String("id", id))
	requestRefresh(c, h.Stats)
	message(c, http.StatusOK, "Service deleted")
}

// nonNil keeps empty results encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
