package reviewRepo

import (
	"context"

	"portal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id string) (*models.Review, error)
	// ListByReviewer returns the reviews written by email.
	ListByReviewer(ctx context.Context, email string) ([]models.Review, error)
	// ListByService returns the reviews attached to serviceID.
	ListByService(ctx context.Context, serviceID string) ([]models.Review, error)
	// Update applies the non-nil fields of update.
	Update(ctx context.Context, id string, update models.ReviewUpdate) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
