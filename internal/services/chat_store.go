package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AanchalGupta0502/SocialeX/internal/common"
	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"github.com/AanchalGupta0502/SocialeX/internal/repositories"
)

// ChatStore persists conversations. Appending is idempotent per message id.
type ChatStore struct {
	chats repositories.ChatRepository
	now   func() time.Time
}

func NewChatStore(chats repositories.ChatRepository) *ChatStore {
	return &ChatStore{chats: chats, now: time.Now}
}

// Append adds msg to chatID, creating the chat on first use. A message whose
// id is already stored leaves the chat unchanged. The full chat is returned.
func (s *ChatStore) Append(ctx context.Context, chatID string, msg models.Message) (*models.Chat, error) {
	switch {
	case chatID == "":
		return nil, fmt.Errorf("%w: chatId is required", common.ErrorValidation)
	case msg.ID == "":
		return nil, fmt.Errorf("%w: message id is required", common.ErrorValidation)
	case msg.SenderID == "":
		return nil, fmt.Errorf("%w: senderId is required", common.ErrorValidation)
	}
	if msg.Date.IsZero() {
		msg.Date = s.now().UTC()
	}
	return s.chats.AppendMessage(ctx, chatID, msg)
}

// Get returns the chat or common.ErrorNotFound.
func (s *ChatStore) Get(ctx context.Context, chatID string) (*models.Chat, error) {
	if chatID == "" {
		return nil, fmt.Errorf("%w: chatId is required", common.ErrorValidation)
	}
	return s.chats.GetChat(ctx, chatID)
}
