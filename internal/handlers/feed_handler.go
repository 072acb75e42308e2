package handlers

import (
	"net/http"
	"slices"

	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"github.com/AanchalGupta0502/SocialeX/internal/repositories"
	"github.com/AanchalGupta0502/SocialeX/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the home feed: the caller's posts and those of the
// users they follow, newest first.
type FeedHandler struct {
	posts    repositories.PostRepository
	profiles *services.Profiles
}

func NewFeedHandler(posts repositories.PostRepository, profiles *services.Profiles) *FeedHandler {
	return &FeedHandler{posts: posts, profiles: profiles}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/feed", h.GetFeed, requireAuth)
}

// FeedPost is a post with the caller's like flag
type FeedPost struct {
	models.Post
	IsLiked bool `json:"isLiked"`
}

func (h *FeedHandler) GetFeed(c echo.Context) error {
	ctx := c.Request().Context()
	userID := currentUserID(c)

	user, err := h.profiles.FindByID(ctx, userID)
	if err != nil {
		return httpError(err, "User not found")
	}

	skip, limit := pagination(c, 20)
	authors := append([]string{userID}, user.Following...)
	posts, err := h.posts.GetPostsByUserIDs(ctx, authors, skip, limit)
	if err != nil {
		return httpError(err, "Post not found")
	}

	feed := make([]FeedPost, len(posts))
	for i, p := range posts {
		feed[i] = FeedPost{Post: p, IsLiked: slices.Contains(p.Likes, userID)}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"posts":   feed,
		"skip":    skip,
		"limit":   limit,
		"hasMore": int64(len(posts)) == limit,
	})
}
