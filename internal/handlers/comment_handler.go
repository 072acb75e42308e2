package handlers

import (
	"net/http"

	"github.com/AanchalGupta0502/SocialeX/internal/realtime"
	"github.com/labstack/echo/v4"
)

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=2200"`
}

// RegisterCommentRoutes registers comment routes
func (h *PostHandler) RegisterCommentRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/:id/comments", h.CreateComment, requireAuth)
	g.GET("/:id/comments", h.GetComments)
}

// CreateComment appends a comment as the authenticated user
func (h *PostHandler) CreateComment(c echo.Context) error {
	var req CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	author, err := h.content.Author(ctx, currentUserID(c))
	if err != nil {
		return httpError(err, "User not found")
	}
	post, err := h.graph.AddComment(ctx, c.Param("id"), author.Username, req.Comment)
	if err != nil {
		return httpError(err, "Post not found")
	}

	added := realtime.CommentAdded{PostID: post.ID.Hex(), Comments: post.Comments}
	h.announce(ctx, realtime.EventCommentAdded, added)
	return c.JSON(http.StatusCreated, added)
}

// GetComments returns the comment thread in insertion order
func (h *PostHandler) GetComments(c echo.Context) error {
	post, err := h.posts.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err, "Post not found")
	}
	return c.JSON(http.StatusOK, post.Comments)
}
