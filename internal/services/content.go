package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AanchalGupta0502/SocialeX/internal/common"
	"github.com/AanchalGupta0502/SocialeX/internal/logging"
	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"github.com/AanchalGupta0502/SocialeX/internal/repositories"
)

func nowUTC() time.Time { return time.Now().UTC() }

// Content creates posts and stories on behalf of an existing user.
type Content struct {
	users   repositories.UserRepository
	posts   repositories.PostRepository
	stories repositories.StoryRepository
	logger  logging.Logger
}

func NewContent(users repositories.UserRepository, posts repositories.PostRepository,
	stories repositories.StoryRepository, logger logging.Logger) *Content {
	return &Content{users: users, posts: posts, stories: stories, logger: logger}
}

// CreatePost stores the post and appends its id to the author's posts.
func (c *Content) CreatePost(ctx context.Context, userID string, req models.CreatePostRequest) (*models.Post, error) {
	author, err := c.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	post := &models.Post{
		UserID:    userID,
		Username:  author.Username,
		Content:   req.Content,
		MediaURLs: req.MediaURLs,
	}
	if err := c.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	if err := c.users.AddPostRef(ctx, userID, post.ID.Hex()); err != nil {
		c.logger.Warn(ctx, "post reference not recorded", "post_id", post.ID.Hex(), "user_id", userID, "error", err)
	}
	return post, nil
}

// CreateStory stores a story. The username is taken from the user record
// when the caller leaves it empty.
func (c *Content) CreateStory(ctx context.Context, userID, username string, req models.CreateStoryRequest) (*models.Story, error) {
	if userID == "" || req.MediaURL == "" {
		return nil, fmt.Errorf("%w: userId and mediaUrl are required", common.ErrorValidation)
	}
	author, err := c.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if username == "" {
		username = author.Username
	}
	story := &models.Story{
		UserID:    userID,
		Username:  username,
		MediaType: req.MediaType,
		MediaURL:  req.MediaURL,
		Text:      req.Text,
	}
	if err := c.stories.CreateStory(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// Author returns the user record of userID.
func (c *Content) Author(ctx context.Context, userID string) (*models.User, error) {
	return c.users.GetUserByID(ctx, userID)
}
