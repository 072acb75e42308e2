package handlers

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"github.com/AanchalGupta0502/SocialeX/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications repositories.NotificationRepository, users repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, users: users}
}

// RegisterNotificationRoutes registers notification routes; the group is
// expected to be authenticated.
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("", h.GetNotifications)
	g.GET("/grouped", h.GetGroupedNotifications)
	g.GET("/unread-count", h.GetUnreadCount)
	g.PUT("/:id/read", h.MarkAsRead)
	g.PUT("/read-all", h.MarkAllAsRead)
}

// EnrichedNotification includes actor info
type EnrichedNotification struct {
	models.Notification
	Actor *models.UserCompact `json:"actor,omitempty"`
}

func (h *NotificationHandler) enrich(ctx context.Context, notifications []models.Notification) []EnrichedNotification {
	enriched := make([]EnrichedNotification, len(notifications))
	cache := make(map[string]*models.UserCompact)

	for i, n := range notifications {
		enriched[i] = EnrichedNotification{Notification: n}
		actor, ok := cache[n.ActorID]
		if !ok {
			if user, err := h.users.GetUserByID(ctx, n.ActorID); err == nil {
				compact := user.ToCompact()
				actor = &compact
			}
			cache[n.ActorID] = actor
		}
		enriched[i].Actor = actor
	}
	return enriched
}

// GetNotifications returns paginated notifications
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	ctx := c.Request().Context()
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	notifications, total, err := h.notifications.GetByRecipientID(ctx, currentUserID(c), page, limit)
	if err != nil {
		return httpError(err, "Notification not found")
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return c.JSON(http.StatusOK, echo.Map{
		"notifications": h.enrich(ctx, notifications),
		"meta": echo.Map{
			"currentPage":     page,
			"totalPages":      totalPages,
			"totalItems":      total,
			"itemsPerPage":    limit,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}

// GetGroupedNotifications returns notifications grouped by time period
func (h *NotificationHandler) GetGroupedNotifications(c echo.Context) error {
	ctx := c.Request().Context()
	userID := currentUserID(c)

	grouped, err := h.notifications.GetGrouped(ctx, userID, time.Now())
	if err != nil {
		return httpError(err, "Notification not found")
	}
	unread, err := h.notifications.GetUnreadCount(ctx, userID)
	if err != nil {
		return httpError(err, "Notification not found")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"notifications": echo.Map{
			"today":     h.enrich(ctx, grouped.Today),
			"yesterday": h.enrich(ctx, grouped.Yesterday),
			"thisWeek":  h.enrich(ctx, grouped.ThisWeek),
			"older":     h.enrich(ctx, grouped.Older),
		},
		"unreadCount": unread,
	})
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notifications.GetUnreadCount(c.Request().Context(), currentUserID(c))
	if err != nil {
		return httpError(err, "Notification not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// MarkAsRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}
	if err := h.notifications.MarkAsRead(c.Request().Context(), uint(id), currentUserID(c)); err != nil {
		return httpError(err, "Notification not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllAsRead marks all notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	if err := h.notifications.MarkAllAsRead(c.Request().Context(), currentUserID(c)); err != nil {
		return httpError(err, "Notification not found")
	}
	return c.NoContent(http.StatusNoContent)
}
