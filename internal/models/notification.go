package models

import "time"

const (
	NotificationFollow  = "follow"
	NotificationLike    = "like"
	NotificationComment = "comment"
)

// Notification represents a user activity record (PostgreSQL)
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"`
	ActorID     string    `json:"actorId" gorm:"size:64;index"`
	RecipientID string    `json:"recipientId" gorm:"size:64;index"`
	TargetID    string    `json:"targetId" gorm:"size:64"`
	TargetType  string    `json:"targetType" gorm:"size:20"` // post, user
	Message     string    `json:"message"`
	IsRead      bool      `json:"isRead" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
}

// GroupedNotifications buckets notifications by how recent they are.
type GroupedNotifications struct {
	Today     []Notification `json:"today"`
	Yesterday []Notification `json:"yesterday"`
	ThisWeek  []Notification `json:"thisWeek"`
	Older     []Notification `json:"older"`
}
