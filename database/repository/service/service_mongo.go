package serviceRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"portal/database/repository"
	"portal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo creates a repository over the given collection.
func NewMongoServiceRepo(coll *mongo.Collection) *MongoServiceRepo {
	return &MongoServiceRepo{coll: coll}
}

func (r *MongoServiceRepo) Create(ctx context.Context, service *models.Service) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	service.ID = primitive.NewObjectID()
	service.CreatedAt = now
	service.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, service); err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create service: %w", err)
	}
	return service.ID, nil
}

func (r *MongoServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}

	var service models.Service
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&service); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("service %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch service %s: %w", id, err)
	}
	return &service, nil
}

func (r *MongoServiceRepo) List(ctx context.Context, limit int64) ([]models.Service, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, bson.M{}, opts)
}

func (r *MongoServiceRepo) ListByOwner(ctx context.Context, email string) ([]models.Service, error) {
	return r.find(ctx, bson.M{"userEmail": email})
}

func (r *MongoServiceRepo) Search(ctx context.Context, query models.ServiceQuery) ([]models.Service, error) {
	return r.find(ctx, searchFilter(query))
}

// searchFilter matches the search term literally; regex metacharacters in
// user input are escaped.
func searchFilter(query models.ServiceQuery) bson.M {
	filter := bson.M{
		"title": primitive.Regex{Pattern: regexp.QuoteMeta(query.Search), Options: "i"},
	}
	if query.Category != "" {
		filter["category"] = query.Category
	}
	return filter
}

func (r *MongoServiceRepo) Update(ctx context.Context, id string, update models.ServiceUpdate) error {
	oid, err := repository.ParseID(id)
	if err != nil {
		return err
	}

	set := bson.M{
		"title":       update.Title,
		"companyName": update.CompanyName,
		"price":       update.Price,
		"category":    update.Category,
		"website":     update.Website,
		"updatedAt":   time.Now().UTC(),
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update service %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("service %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *MongoServiceRepo) Delete(ctx context.Context, id string) error {
	oid, err := repository.ParseID(id)
	if err != nil {
		return err
	}

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete service %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("service %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *MongoServiceRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	return n, nil
}

// CountOwners aggregates instead of using distinct, which Stable API v1
// strict mode rejects.
func (r *MongoServiceRepo) CountOwners(ctx context.Context) (int64, error) {
	cursor, err := r.coll.Aggregate(ctx, ownersPipeline())
	if err != nil {
		return 0, fmt.Errorf("failed to count service owners: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		Owners int64 `bson:"owners"`
	}
	if !cursor.Next(ctx) {
		// $count emits nothing when no document matched.
		return 0, cursor.Err()
	}
	if err := cursor.Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode owner count: %w", err)
	}
	return result.Owners, nil
}

// ownersPipeline counts distinct non-empty userEmail values.
func ownersPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userEmail": bson.M{"$nin": bson.A{nil, ""}}}}},
		{{Key: "$group", Value: bson.M{"_id": "$userEmail"}}},
		{{Key: "$count", Value: "owners"}},
	}
}

func (r *MongoServiceRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Service, error) {
	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer cursor.Close(ctx)

	services := []models.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}
