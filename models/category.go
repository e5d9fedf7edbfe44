package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category is read-only reference data used to browse services.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}
