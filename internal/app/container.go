package app

import (
	"context"
	"log"
	"time"

	"jobify/internal/config"
	"jobify/internal/database"
	"jobify/internal/infrastructure/cache"
	"jobify/internal/storage"
)

// Container holds the process-wide dependencies: configuration, the
// document store, the cache, local file storage, and the shared logger.
type Container struct {
	Config config.Config
	Logger *log.Logger
	DB     *database.Mongo
	Cache  *cache.Redis
	Files  *storage.Local
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}

	if err := db.EnsureIndexes(ctx); err != nil {
		_ = db.Close(ctx)
		return nil, err
	}

	files, err := storage.NewLocal(cfg.Upload.Dir)
	if err != nil {
		_ = db.Close(ctx)
		return nil, err
	}

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
		Files:  files,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Printf("[App] cache close error: %v", err)
		}
	}
	if c.DB != nil {
		return c.DB.Close(ctx)
	}
	return nil
}
