package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/AanchalGupta0502/SocialeX/internal/common"
	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChatRepository stores conversations. AppendMessage creates the chat on
// first use and ignores a message whose id is already stored.
type ChatRepository interface {
	AppendMessage(ctx context.Context, chatID string, msg models.Message) (*models.Chat, error)
	GetChat(ctx context.Context, chatID string) (*models.Chat, error)
}

// appendAttempts bounds retries when concurrent writers race to create the
// same chat.
const appendAttempts = 3

type MongoChatRepository struct {
	collection *mongo.Collection
}

func NewMongoChatRepository(db *mongo.Database) *MongoChatRepository {
	return &MongoChatRepository{collection: db.Collection(ChatsCollection)}
}

func (r *MongoChatRepository) AppendMessage(ctx context.Context, chatID string, msg models.Message) (*models.Chat, error) {
	upsert := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	for attempt := 0; attempt < appendAttempts; attempt++ {
		var chat models.Chat

		// Push only if no stored message carries this id.
		err := r.collection.FindOneAndUpdate(ctx,
			bson.M{"_id": chatID, "messages.id": bson.M{"$ne": msg.ID}},
			bson.M{"$push": bson.M{"messages": msg}},
			returnAfter,
		).Decode(&chat)
		if err == nil {
			return &chat, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongoErr("append message to chat "+chatID, err)
		}

		// The chat is missing or already holds the message. The upsert
		// creates it with this message, or returns it untouched.
		err = r.collection.FindOneAndUpdate(ctx,
			bson.M{"_id": chatID},
			bson.M{"$setOnInsert": bson.M{"messages": []models.Message{msg}}},
			upsert,
		).Decode(&chat)
		if mongo.IsDuplicateKeyError(err) {
			continue
		}
		if err != nil {
			return nil, mongoErr("create chat "+chatID, err)
		}
		if chat.HasMessage(msg.ID) {
			return &chat, nil
		}
		// Another writer created the chat between the two updates.
	}
	return nil, fmt.Errorf("%w: append to chat %s: gave up after %d attempts", common.ErrorStorage, chatID, appendAttempts)
}

func (r *MongoChatRepository) GetChat(ctx context.Context, chatID string) (*models.Chat, error) {
	var chat models.Chat
	if err := r.collection.FindOne(ctx, bson.M{"_id": chatID}).Decode(&chat); err != nil {
		return nil, mongoErr("get chat "+chatID, err)
	}
	if chat.Messages == nil {
		chat.Messages = []models.Message{}
	}
	return &chat, nil
}
