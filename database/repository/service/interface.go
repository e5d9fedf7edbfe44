package serviceRepo

import (
	"context"

	"portal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceRepository defines methods for service listing data access.
type ServiceRepository interface {
	// Create inserts a new service and returns its generated ID.
	Create(ctx context.Context, service *models.Service) (primitive.ObjectID, error)
	// GetByID retrieves a single service.
	GetByID(ctx context.Context, id string) (*models.Service, error)
	// List returns services in natural order; limit <= 0 means no limit.
	List(ctx context.Context, limit int64) ([]models.Service, error)
	// ListByOwner returns the services published by email.
	ListByOwner(ctx context.Context, email string) ([]models.Service, error)
	// Search filters by title substring and exact category.
	Search(ctx context.Context, query models.ServiceQuery) ([]models.Service, error)
	// Update sets the editable fields of an existing service.
	Update(ctx context.Context, id string, update models.ServiceUpdate) error
	// Delete removes a service.
	Delete(ctx context.Context, id string) error
	// Count returns the number of services.
	Count(ctx context.Context) (int64, error)
	// CountOwners returns the number of distinct non-empty owner emails.
	CountOwners(ctx context.Context) (int64, error)
}
