package config

import (
	"context"
	"fmt"
	"time"

	"github.com/AanchalGupta0502/SocialeX/internal/logging"
	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the database connections. Either field may be nil: Mongo when the
// in-memory storage driver is selected, Postgres when notifications are off.
type DB struct {
	Postgres *gorm.DB
	Mongo    *mongo.Client
	logger   logging.Logger
}

// InitDB opens the configured connections and migrates the relational
// schema.
func InitDB(ctx context.Context, cfg *Config, logger logging.Logger) (*DB, error) {
	db := &DB{logger: logger}

	if cfg.StorageDriver != "memory" {
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI environment variable not set")
		}
		mongoClient, err := initMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		db.Mongo = mongoClient
		logger.Info(ctx, "connected to MongoDB", "database", cfg.MongoDatabase)
	}

	if cfg.PostgresConnStr != "" {
		postgresDB, err := initPostgres(cfg.PostgresConnStr, cfg.Env)
		if err != nil {
			db.CloseDB()
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		if err := postgresDB.WithContext(ctx).AutoMigrate(&models.Notification{}); err != nil {
			db.Postgres = postgresDB
			db.CloseDB()
			return nil, fmt.Errorf("failed to migrate notifications: %w", err)
		}
		db.Postgres = postgresDB
		logger.Info(ctx, "connected to PostgreSQL")
	} else {
		logger.Info(ctx, "POSTGRES_CONN_STR not set, notifications disabled")
	}

	return db, nil
}

// initPostgres initializes the PostgreSQL database connection using GORM
func initPostgres(connStr, env string) (*gorm.DB, error) {
	level := gormlogger.Warn
	if env == "production" {
		level = gormlogger.Error
	}
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{Logger: gormlogger.Default.LogMode(level)})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// initMongo initializes the MongoDB connection
func initMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	ctx := context.Background()
	if db.Postgres != nil {
		if sqlDB, err := db.Postgres.DB(); err != nil {
			db.logger.Error(ctx, "error getting SQL DB from GORM", "error", err)
		} else if err := sqlDB.Close(); err != nil {
			db.logger.Error(ctx, "error closing PostgreSQL connection", "error", err)
		} else {
			db.logger.Info(ctx, "PostgreSQL connection closed")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			db.logger.Error(ctx, "error closing MongoDB connection", "error", err)
		} else {
			db.logger.Info(ctx, "MongoDB connection closed")
		}
	}
}
