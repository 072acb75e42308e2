package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is stored in the "posts" collection. Likes is a set of user ids;
// comments keep insertion order.
type Post struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID    string             `json:"userId" bson:"userId"`
	Username  string             `json:"username" bson:"username"`
	Content   string             `json:"content" bson:"content"`
	MediaURLs []string           `json:"mediaUrls,omitempty" bson:"mediaUrls,omitempty"`
	Likes     []string           `json:"likes" bson:"likes"`
	Comments  []Comment          `json:"comments" bson:"comments"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// Comment is one entry of a post's comment thread.
type Comment struct {
	Username  string    `json:"username" bson:"username"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content   string   `json:"content" validate:"required,min=1,max=2200"`
	MediaURLs []string `json:"mediaUrls,omitempty" validate:"omitempty,dive,url"`
}
