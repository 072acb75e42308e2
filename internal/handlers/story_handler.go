package handlers

import (
	"net/http"

	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"github.com/AanchalGupta0502/SocialeX/internal/repositories"
	"github.com/AanchalGupta0502/SocialeX/internal/services"
	"github.com/labstack/echo/v4"
)

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	stories repositories.StoryRepository
	content *services.Content
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(stories repositories.StoryRepository, content *services.Content) *StoryHandler {
	return &StoryHandler{stories: stories, content: content}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("", h.CreateStory, requireAuth)
	g.GET("", h.GetStories)
	g.GET("/user/:userId", h.GetUserStories)
}

// CreateStory creates a story as the authenticated user
func (h *StoryHandler) CreateStory(c echo.Context) error {
	var req models.CreateStoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	story, err := h.content.CreateStory(c.Request().Context(), currentUserID(c), "", req)
	if err != nil {
		return httpError(err, "User not found")
	}
	return c.JSON(http.StatusCreated, story)
}

// GetStories returns the most recent stories
func (h *StoryHandler) GetStories(c echo.Context) error {
	_, limit := pagination(c, 50)
	stories, err := h.stories.GetStories(c.Request().Context(), limit)
	if err != nil {
		return httpError(err, "Story not found")
	}
	return c.JSON(http.StatusOK, stories)
}

func (h *StoryHandler) GetUserStories(c echo.Context) error {
	stories, err := h.stories.GetStoriesByUserID(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return httpError(err, "Story not found")
	}
	return c.JSON(http.StatusOK, stories)
}
