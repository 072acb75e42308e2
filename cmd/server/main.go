package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AanchalGupta0502/SocialeX/internal/logging"
	"github.com/AanchalGupta0502/SocialeX/internal/realtime"
	"github.com/AanchalGupta0502/SocialeX/internal/repositories"
	"github.com/AanchalGupta0502/SocialeX/internal/router"
	"github.com/AanchalGupta0502/SocialeX/internal/services"
	"github.com/AanchalGupta0502/SocialeX/pkg/config"
	"github.com/AanchalGupta0502/SocialeX/pkg/firebase"
	"github.com/AanchalGupta0502/SocialeX/validators"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.UsesDevSecret() {
		logger.Warn(ctx, "JWT_SECRET not set, signing tokens with the development key")
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
	logger.Info(ctx, "shutdown completed")
}

// stores groups the document-store repositories of one storage driver.
type stores struct {
	users   repositories.UserRepository
	posts   repositories.PostRepository
	stories repositories.StoryRepository
	chats   repositories.ChatRepository
}

func openStores(ctx context.Context, cfg *config.Config, db *config.DB) (*stores, error) {
	switch cfg.StorageDriver {
	case "memory":
		mem := repositories.NewMemoryStore()
		return &stores{users: mem, posts: mem, stories: mem, chats: mem}, nil
	case "mongo":
		mdb := db.Mongo.Database(cfg.MongoDatabase)
		users := repositories.NewMongoUserRepository(mdb)
		if err := users.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return &stores{
			users:   users,
			posts:   repositories.NewMongoPostRepository(mdb),
			stories: repositories.NewMongoStoryRepository(mdb),
			chats:   repositories.NewMongoChatRepository(mdb),
		}, nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}

func run(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	db, err := config.InitDB(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize databases: %w", err)
	}
	defer db.CloseDB()

	st, err := openStores(ctx, cfg, db)
	if err != nil {
		return err
	}
	logger.Info(ctx, "storage ready", "driver", cfg.StorageDriver)

	deps := router.Dependencies{
		Users:   st.users,
		Posts:   st.posts,
		Stories: st.stories,
		Logger:  logger,
	}
	if db.Postgres != nil {
		deps.Notifications = repositories.NewPostgresNotificationRepository(db.Postgres)
	}
	if cfg.S3.Enabled() {
		deps.Attachments = repositories.NewS3AttachmentStorage(cfg.S3)
		logger.Info(ctx, "chat attachments enabled", "bucket", cfg.S3.Bucket)
	}
	if cfg.FirebaseCredentialsPath != "" {
		app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return err
		}
		deps.Firebase = app.AuthClient
		logger.Info(ctx, "firebase login enabled")
	}

	deps.Accounts = services.NewAccounts(st.users, cfg.JWTSecret, cfg.TokenTTL)
	deps.Profiles = services.NewProfiles(st.users)
	deps.Graph = services.NewSocialGraph(st.users, st.posts, deps.Notifications, logger)
	deps.Content = services.NewContent(st.users, st.posts, st.stories, logger)

	validator := validators.NewValidator()
	policy := config.CorsPolicy(cfg)

	rt := realtime.NewRouter(realtime.NewHub(logger), realtime.Services{
		Profiles: deps.Profiles,
		Graph:    deps.Graph,
		Chats:    services.NewChatStore(st.chats),
		Content:  deps.Content,
	}, validator, logger, realtime.Options{
		HandlerTimeout: cfg.HandlerTimeout,
		SendBuffer:     cfg.SendBuffer,
		CheckOrigin:    config.WebSocketOriginCheck(policy),
	})
	deps.Realtime = rt

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator
	config.SetupMiddleware(e, logger, policy)
	router.SetupRoutes(e, deps)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info(gctx, "server listening", "port", cfg.Port, "env", cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// HTTP first so no new connections arrive while handlers drain.
		httpErr := e.Shutdown(shutdownCtx)
		return errors.Join(httpErr, rt.Shutdown(shutdownCtx))
	})
	return g.Wait()
}
