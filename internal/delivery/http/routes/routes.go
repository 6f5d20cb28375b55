package routes

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"jobify/internal/config"
	"jobify/internal/database"
	"jobify/internal/delivery/http/handler"
	v1 "jobify/internal/delivery/http/routes/v1"
	"jobify/internal/infrastructure/cache"
	"jobify/internal/storage"
)

type Registry struct {
	cfg    config.Config
	db     *database.Mongo
	cache  *cache.Redis
	files  *storage.Local
	logger *log.Logger
	health *handler.HealthHandler
}

func NewRegistry(cfg config.Config, db *database.Mongo, rcache *cache.Redis, files *storage.Local, logger *log.Logger) *Registry {
	return &Registry{
		cfg:    cfg,
		db:     db,
		cache:  rcache,
		files:  files,
		logger: logger,
		health: handler.NewHealthHandler(db, rcache),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.cfg, r.db, r.cache, r.files, r.logger)
}
