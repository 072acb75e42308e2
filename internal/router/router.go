package router

import (
	"context"

	"github.com/AanchalGupta0502/SocialeX/internal/handlers"
	"github.com/AanchalGupta0502/SocialeX/internal/logging"
	"github.com/AanchalGupta0502/SocialeX/internal/middleware"
	"github.com/AanchalGupta0502/SocialeX/internal/realtime"
	"github.com/AanchalGupta0502/SocialeX/internal/repositories"
	"github.com/AanchalGupta0502/SocialeX/internal/services"
	"github.com/AanchalGupta0502/SocialeX/pkg/firebase"
	"github.com/labstack/echo/v4"
)

// Dependencies are the wired components the routes need. Notifications,
// Attachments and Firebase are optional; their routes are skipped when nil.
type Dependencies struct {
	Users         repositories.UserRepository
	Posts         repositories.PostRepository
	Stories       repositories.StoryRepository
	Notifications repositories.NotificationRepository
	Attachments   repositories.AttachmentStorage
	Firebase      firebase.IdentityVerifier

	Accounts *services.Accounts
	Profiles *services.Profiles
	Graph    *services.SocialGraph
	Content  *services.Content

	Realtime *realtime.Router
	Logger   logging.Logger
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, d Dependencies) {
	ctx := context.Background()
	requireAuth := middleware.JWTAuthMiddleware(d.Accounts, handlers.UserIDKey)

	e.GET("/health", handlers.HealthCheck(d.Realtime.Hub()))
	e.GET("/ws", d.Realtime.ServeWS)

	api := e.Group("/api")

	authHandler := handlers.NewAuthHandler(d.Accounts, d.Profiles, d.Firebase)
	authHandler.RegisterAuthRoutes(api.Group("/auth"), requireAuth)

	users := api.Group("/users")
	handlers.NewUserHandler(d.Profiles).RegisterProfileRoutes(users, requireAuth)
	handlers.NewFollowHandler(d.Graph).RegisterFollowRoutes(users, requireAuth)

	postHandler := handlers.NewPostHandler(d.Posts, d.Content, d.Graph, d.Realtime, d.Logger)
	posts := api.Group("/post")
	postHandler.RegisterPostRoutes(posts, requireAuth)
	postHandler.RegisterLikeRoutes(posts, requireAuth)
	postHandler.RegisterCommentRoutes(posts, requireAuth)

	handlers.NewFeedHandler(d.Posts, d.Profiles).RegisterFeedRoutes(api, requireAuth)
	handlers.NewStoryHandler(d.Stories, d.Content).RegisterStoryRoutes(api.Group("/story"), requireAuth)

	if d.Notifications != nil {
		handlers.NewNotificationHandler(d.Notifications, d.Users).
			RegisterNotificationRoutes(api.Group("/notifications", requireAuth))
	} else {
		d.Logger.Info(ctx, "notification routes disabled, no relational store configured")
	}

	if d.Attachments != nil {
		handlers.NewAttachmentHandler(d.Attachments).RegisterAttachmentRoutes(api.Group("/chat", requireAuth))
	} else {
		d.Logger.Info(ctx, "attachment routes disabled, no bucket configured")
	}

	d.Logger.Debug(ctx, "all routes configured")
}
