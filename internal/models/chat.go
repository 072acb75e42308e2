package models

import "time"

// Chat is a conversation keyed by a client-chosen id. Messages behave as a
// set keyed by Message.ID even though they are stored in order.
type Chat struct {
	ID       string    `json:"_id" bson:"_id"`
	Messages []Message `json:"messages" bson:"messages"`
}

type Message struct {
	ID       string    `json:"id" bson:"id"`
	Text     string    `json:"text,omitempty" bson:"text,omitempty"`
	File     string    `json:"file,omitempty" bson:"file,omitempty"`
	SenderID string    `json:"senderId" bson:"senderId"`
	Date     time.Time `json:"date" bson:"date"`
}

// HasMessage reports whether a message with the given id is stored.
func (c *Chat) HasMessage(id string) bool {
	for _, m := range c.Messages {
		if m.ID == id {
			return true
		}
	}
	return false
}

// AttachmentUpload is returned when a client asks where to upload a chat file.
type AttachmentUpload struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"uploadUrl"`
	FileURL   string    `json:"fileUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AttachmentRequest struct {
	ChatID      string `json:"chatId" validate:"required"`
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required"`
}
