package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Story is stored in the "stories" collection. Expiry is handled outside
// this service.
type Story struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID    string             `json:"userId" bson:"userId"`
	Username  string             `json:"username" bson:"username"`
	MediaType string             `json:"mediaType,omitempty" bson:"mediaType,omitempty"`
	MediaURL  string             `json:"mediaUrl" bson:"mediaUrl"`
	Text      string             `json:"text,omitempty" bson:"text,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// CreateStoryRequest defines the request body for creating a story
type CreateStoryRequest struct {
	MediaURL  string `json:"mediaUrl" validate:"required"`
	MediaType string `json:"mediaType,omitempty" validate:"omitempty,oneof=image video"`
	Text      string `json:"text,omitempty" validate:"max=500"`
}
