package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/AanchalGupta0502/SocialeX/internal/common"
	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository defines the interface for user data operations. Lookups
// return common.ErrorNotFound when nothing matches; the set mutators report
// whether the stored document changed.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]models.UserCompact, error)
	UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error)
	AddFollowing(ctx context.Context, userID, targetID string) (bool, error)
	RemoveFollowing(ctx context.Context, userID, targetID string) (bool, error)
	AddFollower(ctx context.Context, userID, followerID string) (bool, error)
	RemoveFollower(ctx context.Context, userID, followerID string) (bool, error)
	AddPostRef(ctx context.Context, userID, postID string) error
	RemovePostRef(ctx context.Context, userID, postID string) error
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection(UsersCollection)}
}

// EnsureIndexes creates the unique username and email indexes.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return mongoErr("create user indexes", err)
}

func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	if user.Posts == nil {
		user.Posts = []string{}
	}
	if user.Followers == nil {
		user.Followers = []string{}
	}
	if user.Following == nil {
		user.Following = []string{}
	}
	_, err := r.collection.InsertOne(ctx, user)
	return mongoErr("create user", err)
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M, op string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, mongoErr(op, err)
	}
	return &user, nil
}

func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid}, "get user "+id)
}

func (r *MongoUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username}, "get user by username")
}

func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, "get user by email")
}

// GetUsersByIDs returns compact cards in the order of ids, skipping unknown
// or malformed ids.
func (r *MongoUserRepository) GetUsersByIDs(ctx context.Context, ids []string) ([]models.UserCompact, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []models.UserCompact{}, nil
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1, "username": 1, "profilePic": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, mongoErr("get users by ids", err)
	}
	defer cursor.Close(ctx)

	var found []models.UserCompact
	if err = cursor.All(ctx, &found); err != nil {
		return nil, mongoErr("decode users", err)
	}

	byID := make(map[primitive.ObjectID]models.UserCompact, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}
	out := make([]models.UserCompact, 0, len(found))
	for _, oid := range oids {
		if u, ok := byID[oid]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// UpdateProfile sets only the non-empty fields of update in one atomic write.
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return r.findOne(ctx, bson.M{"_id": oid}, "get user "+id)
	}

	set := bson.M{}
	if update.Username != "" {
		set["username"] = update.Username
	}
	if update.ProfilePic != "" {
		set["profilePic"] = update.ProfilePic
	}
	if update.About != "" {
		set["about"] = update.About
	}

	var user models.User
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, returnAfter).Decode(&user)
	if err != nil {
		return nil, mongoErr("update profile "+id, err)
	}
	return &user, nil
}

func (r *MongoUserRepository) AddFollowing(ctx context.Context, userID, targetID string) (bool, error) {
	return r.updateSet(ctx, userID, "$addToSet", "following", targetID)
}

func (r *MongoUserRepository) RemoveFollowing(ctx context.Context, userID, targetID string) (bool, error) {
	return r.updateSet(ctx, userID, "$pull", "following", targetID)
}

func (r *MongoUserRepository) AddFollower(ctx context.Context, userID, followerID string) (bool, error) {
	return r.updateSet(ctx, userID, "$addToSet", "followers", followerID)
}

func (r *MongoUserRepository) RemoveFollower(ctx context.Context, userID, followerID string) (bool, error) {
	return r.updateSet(ctx, userID, "$pull", "followers", followerID)
}

func (r *MongoUserRepository) AddPostRef(ctx context.Context, userID, postID string) error {
	_, err := r.updateSet(ctx, userID, "$addToSet", "posts", postID)
	return err
}

func (r *MongoUserRepository) RemovePostRef(ctx context.Context, userID, postID string) error {
	_, err := r.updateSet(ctx, userID, "$pull", "posts", postID)
	return err
}

// updateSet applies a single-field set operator ($addToSet or $pull).
func (r *MongoUserRepository) updateSet(ctx context.Context, userID, operator, field, value string) (bool, error) {
	oid, err := objectID(userID)
	if err != nil {
		return false, err
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{operator: bson.M{field: value}})
	if err != nil {
		return false, mongoErr(fmt.Sprintf("%s %s on user %s", operator, field, userID), err)
	}
	if res.MatchedCount == 0 {
		return false, fmt.Errorf("%w: user %s", common.ErrorNotFound, userID)
	}
	return res.ModifiedCount > 0, nil
}
