// File: models/review.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is feedback left by ReviewerEmail on a service. ServiceID is a
// plain reference: removing the service leaves its reviews in place.
type Review struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ServiceID     string             `bson:"serviceId" json:"serviceId"`
	ReviewerEmail string             `bson:"reviewerEmail" json:"reviewerEmail"` // ownership key
	Rating        int                `bson:"rating" json:"rating"`
	Text          string             `bson:"text" json:"text"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ReviewInput is the body accepted when posting a review.
type ReviewInput struct {
	ServiceID     string `json:"serviceId" binding:"required,objectid"`
	ReviewerEmail string `json:"reviewerEmail" binding:"required,email"`
	Rating        int    `json:"rating" binding:"required,min=1,max=5"`
	Text          string `json:"text" binding:"required"`
}

func (in ReviewInput) ToReview() Review {
	return Review{
		ServiceID:     in.ServiceID,
		ReviewerEmail: in.ReviewerEmail,
		Rating:        in.Rating,
		Text:          in.Text,
	}
}

// ReviewUpdate is a partial update; nil fields are left untouched.
type ReviewUpdate struct {
	Rating *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Text   *string `json:"text" binding:"omitempty,min=1"`
}

// Empty reports whether the update would change nothing.
func (u ReviewUpdate) Empty() bool {
	return u.Rating == nil && u.Text == nil
}
