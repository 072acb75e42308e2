package handlers

import (
	"net/http"

	"github.com/AanchalGupta0502/SocialeX/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler exposes follow and unfollow for the authenticated user
type FollowHandler struct {
	graph *services.SocialGraph
}

func NewFollowHandler(graph *services.SocialGraph) *FollowHandler {
	return &FollowHandler{graph: graph}
}

// RegisterFollowRoutes registers follow routes; all require authentication
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/:id/follow", h.Follow, requireAuth)
	g.DELETE("/:id/follow", h.Unfollow, requireAuth)
}

func (h *FollowHandler) Follow(c echo.Context) error {
	user, err := h.graph.Follow(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return httpError(err, "User not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"following": user.Following})
}

func (h *FollowHandler) Unfollow(c echo.Context) error {
	user, err := h.graph.Unfollow(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return httpError(err, "User not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"following": user.Following})
}
