package handlers

import (
	"context"
	"net/http"

	"github.com/AanchalGupta0502/SocialeX/internal/logging"
	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"github.com/AanchalGupta0502/SocialeX/internal/realtime"
	"github.com/AanchalGupta0502/SocialeX/internal/repositories"
	"github.com/AanchalGupta0502/SocialeX/internal/services"
	"github.com/labstack/echo/v4"
)

// Broadcaster pushes an event to every live WebSocket connection.
type Broadcaster interface {
	Broadcast(event string, data any) error
}

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	posts       repositories.PostRepository
	content     *services.Content
	graph       *services.SocialGraph
	broadcaster Broadcaster
	logger      logging.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts repositories.PostRepository, content *services.Content, graph *services.SocialGraph,
	broadcaster Broadcaster, logger logging.Logger) *PostHandler {
	return &PostHandler{posts: posts, content: content, graph: graph, broadcaster: broadcaster, logger: logger}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("", h.CreatePost, requireAuth)
	g.GET("", h.GetPosts)
	g.GET("/:id", h.GetPost)
	g.GET("/user/:userId", h.GetUserPosts)
	g.DELETE("/:id", h.DeletePost, requireAuth)
}

// CreatePost creates a new post owned by the caller
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.content.CreatePost(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return httpError(err, "User not found")
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.posts.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err, "Post not found")
	}
	return c.JSON(http.StatusOK, post)
}

// GetPosts lists posts newest first
func (h *PostHandler) GetPosts(c echo.Context) error {
	skip, limit := pagination(c, 10)
	posts, err := h.posts.GetPosts(c.Request().Context(), skip, limit)
	if err != nil {
		return httpError(err, "Post not found")
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetUserPosts(c echo.Context) error {
	skip, limit := pagination(c, 10)
	posts, err := h.posts.GetPostsByUserID(c.Request().Context(), c.Param("userId"), skip, limit)
	if err != nil {
		return httpError(err, "Post not found")
	}
	return c.JSON(http.StatusOK, posts)
}

// DeletePost deletes the caller's post and announces it to live clients
func (h *PostHandler) DeletePost(c echo.Context) error {
	ctx := c.Request().Context()
	postID := c.Param("id")

	existing, err := h.posts.GetPostByID(ctx, postID)
	if err != nil {
		return httpError(err, "Post not found")
	}
	if existing.UserID != currentUserID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this post")
	}

	if err := h.graph.DeletePost(ctx, postID); err != nil {
		return httpError(err, "Post not found")
	}
	h.announce(ctx, realtime.EventPostDeleted, realtime.PostDeleted{PostID: postID})
	return c.NoContent(http.StatusNoContent)
}

func (h *PostHandler) announce(ctx context.Context, event string, data any) {
	if err := h.broadcaster.Broadcast(event, data); err != nil {
		h.logger.Error(ctx, "broadcast failed", "event", event, "error", err)
	}
}
