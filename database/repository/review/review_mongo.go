package reviewRepo

import (
	"context"
	"fmt"
	"time"

	"portal/database/repository"
	"portal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

func NewMongoReviewRepo(coll *mongo.Collection) *MongoReviewRepo {
	return &MongoReviewRepo{coll: coll}
}

func (r *MongoReviewRepo) Create(ctx context.Context, review *models.Review) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	review.ID = primitive.NewObjectID()
	review.CreatedAt = now
	review.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create review: %w", err)
	}
	return review.ID, nil
}

func (r *MongoReviewRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}

	var review models.Review
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("review %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch review %s: %w", id, err)
	}
	return &review, nil
}

func (r *MongoReviewRepo) ListByReviewer(ctx context.Context, email string) ([]models.Review, error) {
	return r.find(ctx, bson.M{"reviewerEmail": email})
}

func (r *MongoReviewRepo) ListByService(ctx context.Context, serviceID string) ([]models.Review, error) {
	return r.find(ctx, bson.M{"serviceId": serviceID})
}

func (r *MongoReviewRepo) Update(ctx context.Context, id string, update models.ReviewUpdate) error {
	oid, err := repository.ParseID(id)
	if err != nil {
		return err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Rating != nil {
		set["rating"] = *update.Rating
	}
	if update.Text != nil {
		set["text"] = *update.Text
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update review %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("review %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *MongoReviewRepo) Delete(ctx context.Context, id string) error {
	oid, err := repository.ParseID(id)
	if err != nil {
		return err
	}

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete review %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("review %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *MongoReviewRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return n, nil
}

func (r *MongoReviewRepo) find(ctx context.Context, filter bson.M) ([]models.Review, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}
