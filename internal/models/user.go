package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a member profile stored in the "users" collection. Followers and
// following hold hex user ids and are maintained as sets.
type User struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Username   string             `json:"username" bson:"username"`
	Email      string             `json:"email" bson:"email"`
	Password   string             `json:"-" bson:"password"` // bcrypt hash, never serialized
	ProfilePic string             `json:"profilePic" bson:"profilePic"`
	About      string             `json:"about" bson:"about"`
	Posts      []string           `json:"posts" bson:"posts"`
	Followers  []string           `json:"followers" bson:"followers"`
	Following  []string           `json:"following" bson:"following"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

// UserCompact is the card shown in friend lists.
type UserCompact struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	Username   string             `json:"username" bson:"username"`
	ProfilePic string             `json:"profilePic" bson:"profilePic"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Username: u.Username, ProfilePic: u.ProfilePic}
}

// ProfileUpdate carries the profile fields a user may change. Empty fields
// keep their stored value.
type ProfileUpdate struct {
	Username   string
	ProfilePic string
	About      string
}

// IsEmpty reports whether no field would be overwritten.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Username == "" && p.ProfilePic == "" && p.About == ""
}

type RegisterRequest struct {
	Username   string `json:"username" validate:"required,min=2,max=50"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	ProfilePic string `json:"profilePic,omitempty" validate:"omitempty,max=2048"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
