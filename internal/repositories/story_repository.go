package repositories

import (
	"context"
	"time"

	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StoryRepository defines the interface for story operations
type StoryRepository interface {
	CreateStory(ctx context.Context, story *models.Story) error
	GetStoryByID(ctx context.Context, id string) (*models.Story, error)
	GetStories(ctx context.Context, limit int64) ([]models.Story, error)
	GetStoriesByUserID(ctx context.Context, userID string) ([]models.Story, error)
}

type MongoStoryRepository struct {
	collection *mongo.Collection
}

func NewMongoStoryRepository(db *mongo.Database) *MongoStoryRepository {
	return &MongoStoryRepository{collection: db.Collection(StoriesCollection)}
}

func (r *MongoStoryRepository) CreateStory(ctx context.Context, story *models.Story) error {
	story.ID = primitive.NewObjectID()
	story.CreatedAt = time.Now().UTC()
	_, err := r.collection.InsertOne(ctx, story)
	return mongoErr("create story", err)
}

func (r *MongoStoryRepository) GetStoryByID(ctx context.Context, id string) (*models.Story, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var story models.Story
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&story); err != nil {
		return nil, mongoErr("get story "+id, err)
	}
	return &story, nil
}

func (r *MongoStoryRepository) GetStories(ctx context.Context, limit int64) ([]models.Story, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit))
}

func (r *MongoStoryRepository) GetStoriesByUserID(ctx context.Context, userID string) ([]models.Story, error) {
	return r.find(ctx, bson.M{"userId": userID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *MongoStoryRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Story, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, mongoErr("find stories", err)
	}
	defer cursor.Close(ctx)

	stories := []models.Story{}
	if err = cursor.All(ctx, &stories); err != nil {
		return nil, mongoErr("decode stories", err)
	}
	return stories, nil
}
