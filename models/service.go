// File: models/service.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service is a listing published by the user identified by UserEmail.
type Service struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	CompanyName string             `bson:"companyName" json:"companyName"`
	Price       Price              `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Website     string             `bson:"website" json:"website"`
	UserEmail   string             `bson:"userEmail" json:"userEmail"` // ownership key
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ServiceInput is the body accepted when publishing a service.
type ServiceInput struct {
	Title       string `json:"title" binding:"required"`
	CompanyName string `json:"companyName" binding:"required"`
	Price       Price  `json:"price" binding:"required,gt=0"`
	Category    string `json:"category" binding:"required"`
	Website     string `json:"website" binding:"required"`
	UserEmail   string `json:"userEmail" binding:"required,email"`
	Description string `json:"description"`
}

// ToService builds the record to persist.
func (in ServiceInput) ToService() Service {
	return Service{
		Title:       in.Title,
		CompanyName: in.CompanyName,
		Price:       in.Price,
		Category:    in.Category,
		Website:     in.Website,
		UserEmail:   in.UserEmail,
		Description: in.Description,
	}
}

// ServiceUpdate carries the editable fields of a service. The owner cannot
// be changed through an update.
type ServiceUpdate struct {
	Title       string  `json:"title"`
	CompanyName string  `json:"companyName"`
	Price       Price   `json:"price"`
	Category    string  `json:"category"`
	Website     string  `json:"website"`
	Description *string `json:"description,omitempty"`
}

// HasRequiredFields reports whether every mandatory field is present.
func (u ServiceUpdate) HasRequiredFields() bool {
	return u.Title != "" && u.CompanyName != "" && u.Price != 0 && u.Category != "" && u.Website != ""
}

// ServiceQuery filters the public catalogue.
type ServiceQuery struct {
	Search   string // case-insensitive substring of the title
	Category string // exact match
}
