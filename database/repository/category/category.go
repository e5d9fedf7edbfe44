package categoryRepo

import (
	"context"
	"fmt"

	"portal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategoryRepository gives read access to the category reference list.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
}

type mongoCategoryRepo struct {
	coll *mongo.Collection
}

// NewMongoCategoryRepo returns a CategoryRepository backed by MongoDB.
func NewMongoCategoryRepo(coll *mongo.Collection) CategoryRepository {
	return &mongoCategoryRepo{coll: coll}
}

func (r *mongoCategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}
