package handlers

import (
	"net/http"

	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"github.com/AanchalGupta0502/SocialeX/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	profiles *services.Profiles
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(profiles *services.Profiles) *UserHandler {
	return &UserHandler{profiles: profiles}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/search", h.SearchUsers)
	g.PUT("/profile", h.UpdateProfile, requireAuth)
	g.GET("/:id", h.GetUser)
	g.GET("/:id/friends", h.GetFriends)
}

// UpdateProfileRequest carries the fields to change; empty fields are kept.
type UpdateProfileRequest struct {
	Username   string `json:"username" validate:"omitempty,min=2,max=50"`
	ProfilePic string `json:"profilePic" validate:"omitempty,max=2048"`
	About      string `json:"about" validate:"max=500"`
}

func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.profiles.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err, "User profile not found")
	}
	return c.JSON(http.StatusOK, user)
}

// SearchUsers looks a user up by exact username
func (h *UserHandler) SearchUsers(c echo.Context) error {
	username := c.QueryParam("username")
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username query parameter is required")
	}
	user, err := h.profiles.FindByUsername(c.Request().Context(), username)
	if err != nil {
		return httpError(err, "User not found")
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.profiles.UpdateProfile(c.Request().Context(), currentUserID(c), models.ProfileUpdate{
		Username:   req.Username,
		ProfilePic: req.ProfilePic,
		About:      req.About,
	})
	if err != nil {
		return httpError(err, "User profile not found")
	}
	return c.JSON(http.StatusOK, user)
}

// GetFriends lists users who follow and are followed by :id
func (h *UserHandler) GetFriends(c echo.Context) error {
	friends, err := h.profiles.Friends(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err, "User not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"friendsData": friends})
}
