package repositories

import (
	"errors"
	"fmt"

	"github.com/AanchalGupta0502/SocialeX/internal/common"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names of the document store.
const (
	UsersCollection   = "users"
	PostsCollection   = "posts"
	StoriesCollection = "stories"
	ChatsCollection   = "chats"
)

var returnAfter = options.FindOneAndUpdate().SetReturnDocument(options.After)

// objectID parses a hex id. A malformed id cannot name a stored document, so
// it is reported as not found.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", common.ErrorNotFound, id)
	}
	return oid, nil
}

// mongoErr translates driver errors into the common taxonomy.
func mongoErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%w: %s", common.ErrorNotFound, op)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %s", common.ErrorDuplicate, op)
	default:
		return fmt.Errorf("%w: %s: %v", common.ErrorStorage, op, err)
	}
}
