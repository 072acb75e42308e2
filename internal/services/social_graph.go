package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AanchalGupta0502/SocialeX/internal/common"
	"github.com/AanchalGupta0502/SocialeX/internal/logging"
	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"github.com/AanchalGupta0502/SocialeX/internal/repositories"
)

// SocialGraph applies follow, like, comment and delete mutations. Each step
// is one atomic document update; the follow pair is kept symmetric by
// compensating the first write when the second fails.
type SocialGraph struct {
	users    repositories.UserRepository
	posts    repositories.PostRepository
	notifier notifier
	logger   logging.Logger
}

// NewSocialGraph wires the mutator. notifications may be nil.
func NewSocialGraph(users repositories.UserRepository, posts repositories.PostRepository,
	notifications repositories.NotificationRepository, logger logging.Logger) *SocialGraph {
	return &SocialGraph{
		users:    users,
		posts:    posts,
		notifier: notifier{repo: notifications, logger: logger},
		logger:   logger,
	}
}

// Follow makes actorID follow targetID and returns the actor afterwards.
func (g *SocialGraph) Follow(ctx context.Context, actorID, targetID string) (*models.User, error) {
	if err := g.checkPair(ctx, actorID, targetID); err != nil {
		return nil, err
	}

	added, err := g.users.AddFollowing(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	addedBack, err := g.users.AddFollower(ctx, targetID, actorID)
	if err != nil {
		if added {
			g.compensate(ctx, "follow", func() error {
				_, err := g.users.RemoveFollowing(ctx, actorID, targetID)
				return err
			})
		}
		return nil, err
	}

	if added || addedBack {
		g.notifier.notify(ctx, models.NotificationFollow, actorID, targetID, actorID, "user", "started following you")
	}
	return g.users.GetUserByID(ctx, actorID)
}

// Unfollow removes the follow relation in both directions. Not following is
// a no-op.
func (g *SocialGraph) Unfollow(ctx context.Context, actorID, targetID string) (*models.User, error) {
	if err := g.checkPair(ctx, actorID, targetID); err != nil {
		return nil, err
	}

	removed, err := g.users.RemoveFollowing(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if _, err := g.users.RemoveFollower(ctx, targetID, actorID); err != nil {
		if removed {
			g.compensate(ctx, "unfollow", func() error {
				_, err := g.users.AddFollowing(ctx, actorID, targetID)
				return err
			})
		}
		return nil, err
	}
	return g.users.GetUserByID(ctx, actorID)
}

func (g *SocialGraph) checkPair(ctx context.Context, actorID, targetID string) error {
	if actorID == "" || targetID == "" {
		return fmt.Errorf("%w: both user ids are required", common.ErrorValidation)
	}
	if actorID == targetID {
		return fmt.Errorf("%w: cannot follow yourself", common.ErrorValidation)
	}
	if _, err := g.users.GetUserByID(ctx, actorID); err != nil {
		return err
	}
	_, err := g.users.GetUserByID(ctx, targetID)
	return err
}

// compensate undoes a completed first phase. A failed undo leaves the pair
// asymmetric, which is logged for repair.
func (g *SocialGraph) compensate(ctx context.Context, op string, undo func() error) {
	if err := undo(); err != nil {
		g.logger.Error(ctx, "compensation failed, follow pair left asymmetric", "op", op, "error", err)
	}
}

// LikePost adds userID to the post's likes and returns the post.
func (g *SocialGraph) LikePost(ctx context.Context, postID, userID string) (*models.Post, error) {
	if postID == "" || userID == "" {
		return nil, fmt.Errorf("%w: postId and userId are required", common.ErrorValidation)
	}
	post, err := g.posts.AddLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	g.notifier.notify(ctx, models.NotificationLike, userID, post.UserID, postID, "post", "liked your post")
	return post, nil
}

func (g *SocialGraph) UnlikePost(ctx context.Context, postID, userID string) (*models.Post, error) {
	if postID == "" || userID == "" {
		return nil, fmt.Errorf("%w: postId and userId are required", common.ErrorValidation)
	}
	return g.posts.RemoveLike(ctx, postID, userID)
}

// AddComment appends a comment. Identical comments are all kept.
func (g *SocialGraph) AddComment(ctx context.Context, postID, username, text string) (*models.Post, error) {
	if postID == "" || username == "" || strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: postId, username and comment are required", common.ErrorValidation)
	}
	post, err := g.posts.AddComment(ctx, postID, models.Comment{Username: username, Comment: text, CreatedAt: nowUTC()})
	if err != nil {
		return nil, err
	}

	actorID := username
	if u, err := g.users.GetUserByUsername(ctx, username); err == nil {
		actorID = u.ID.Hex()
	}
	g.notifier.notify(ctx, models.NotificationComment, actorID, post.UserID, postID, "post", username+" commented on your post")
	return post, nil
}

// DeletePost removes a post and its reference on the owner. A post that does
// not exist is not an error.
func (g *SocialGraph) DeletePost(ctx context.Context, postID string) error {
	if postID == "" {
		return fmt.Errorf("%w: postId is required", common.ErrorValidation)
	}
	post, err := g.posts.DeletePost(ctx, postID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := g.users.RemovePostRef(ctx, post.UserID, postID); err != nil && !errors.Is(err, common.ErrorNotFound) {
		g.logger.Warn(ctx, "post reference not removed", "post_id", postID, "owner", post.UserID, "error", err)
	}
	return nil
}
