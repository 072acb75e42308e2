package handlers

import (
	"net/http"

	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"github.com/AanchalGupta0502/SocialeX/internal/realtime"
	"github.com/labstack/echo/v4"
)

// RegisterLikeRoutes registers like and unlike; the live likeUpdated event
// is sent exactly as for the WebSocket events.
func (h *PostHandler) RegisterLikeRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/:id/like", h.LikePost, requireAuth)
	g.DELETE("/:id/like", h.UnlikePost, requireAuth)
}

func (h *PostHandler) LikePost(c echo.Context) error {
	post, err := h.graph.LikePost(c.Request().Context(), c.Param("id"), currentUserID(c))
	return h.likesChanged(c, post, err)
}

func (h *PostHandler) UnlikePost(c echo.Context) error {
	post, err := h.graph.UnlikePost(c.Request().Context(), c.Param("id"), currentUserID(c))
	return h.likesChanged(c, post, err)
}

func (h *PostHandler) likesChanged(c echo.Context, post *models.Post, err error) error {
	if err != nil {
		return httpError(err, "Post not found")
	}
	update := realtime.LikeUpdated{PostID: post.ID.Hex(), Likes: post.Likes}
	h.announce(c.Request().Context(), realtime.EventLikeUpdated, update)
	return c.JSON(http.StatusOK, update)
}
