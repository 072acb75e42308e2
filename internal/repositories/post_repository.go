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

// PostRepository defines the interface for post data operations. Every
// mutation is a single atomic document update.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPosts(ctx context.Context, skip, limit int64) ([]models.Post, error)
	GetPostsByUserID(ctx context.Context, userID string, skip, limit int64) ([]models.Post, error)
	GetPostsByUserIDs(ctx context.Context, userIDs []string, skip, limit int64) ([]models.Post, error)
	AddLike(ctx context.Context, postID, userID string) (*models.Post, error)
	RemoveLike(ctx context.Context, postID, userID string) (*models.Post, error)
	AddComment(ctx context.Context, postID string, comment models.Comment) (*models.Post, error)
	DeletePost(ctx context.Context, postID string) (*models.Post, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection(PostsCollection)}
}

func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now().UTC()
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return mongoErr("create post", err)
}

func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var post models.Post
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&post); err != nil {
		return nil, mongoErr("get post "+id, err)
	}
	return &post, nil
}

func (r *MongoPostRepository) GetPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	return r.find(ctx, bson.M{}, skip, limit)
}

func (r *MongoPostRepository) GetPostsByUserID(ctx context.Context, userID string, skip, limit int64) ([]models.Post, error) {
	return r.find(ctx, bson.M{"userId": userID}, skip, limit)
}

// GetPostsByUserIDs returns the newest posts written by any of userIDs.
func (r *MongoPostRepository) GetPostsByUserIDs(ctx context.Context, userIDs []string, skip, limit int64) ([]models.Post, error) {
	if len(userIDs) == 0 {
		return []models.Post{}, nil
	}
	return r.find(ctx, bson.M{"userId": bson.M{"$in": userIDs}}, skip, limit)
}

func (r *MongoPostRepository) find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Post, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, mongoErr("find posts", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, mongoErr("decode posts", err)
	}
	return posts, nil
}

// AddLike adds userID to the likes set. Liking twice leaves one entry.
func (r *MongoPostRepository) AddLike(ctx context.Context, postID, userID string) (*models.Post, error) {
	return r.update(ctx, postID, bson.M{"$addToSet": bson.M{"likes": userID}}, "like post")
}

func (r *MongoPostRepository) RemoveLike(ctx context.Context, postID, userID string) (*models.Post, error) {
	return r.update(ctx, postID, bson.M{"$pull": bson.M{"likes": userID}}, "unlike post")
}

// AddComment appends to the comment thread; identical comments are kept.
func (r *MongoPostRepository) AddComment(ctx context.Context, postID string, comment models.Comment) (*models.Post, error) {
	return r.update(ctx, postID, bson.M{"$push": bson.M{"comments": comment}}, "comment on post")
}

// DeletePost removes the post and returns what was deleted.
func (r *MongoPostRepository) DeletePost(ctx context.Context, postID string) (*models.Post, error) {
	oid, err := objectID(postID)
	if err != nil {
		return nil, err
	}
	var post models.Post
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&post); err != nil {
		return nil, mongoErr("delete post "+postID, err)
	}
	return &post, nil
}

func (r *MongoPostRepository) update(ctx context.Context, postID string, update bson.M, op string) (*models.Post, error) {
	oid, err := objectID(postID)
	if err != nil {
		return nil, err
	}
	var post models.Post
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, returnAfter).Decode(&post); err != nil {
		return nil, mongoErr(op+" "+postID, err)
	}
	return &post, nil
}
