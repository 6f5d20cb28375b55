package v1

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"jobify/internal/config"
	"jobify/internal/database"
	"jobify/internal/delivery/http/handler"
	"jobify/internal/delivery/http/middleware"
	"jobify/internal/domain/user"
	"jobify/internal/infrastructure/cache"
	"jobify/internal/pkg/jwt"
	"jobify/internal/repository"
	"jobify/internal/storage"
	ucapp "jobify/internal/usecase/application"
	ucauth "jobify/internal/usecase/auth"
	ucdoc "jobify/internal/usecase/document"
	ucjob "jobify/internal/usecase/job"
	ucsponsor "jobify/internal/usecase/sponsor"
	ucuser "jobify/internal/usecase/user"
)

// Register wires the /api/v1 surface: repositories over the document
// store, usecases on top, handlers on top of those.
func Register(r fiber.Router, cfg config.Config, db *database.Mongo, rcache *cache.Redis, files *storage.Local, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)

	userRepo := repository.NewMongoUserRepository(db)
	jobRepo := repository.NewMongoJobRepository(db)
	appRepo := repository.NewMongoApplicationRepository(db)
	docRepo := repository.NewMongoDocumentRepository(db)
	sponsorRepo := repository.NewMongoSponsorRepository(db)
	prefRepo := repository.NewMongoPreferenceRepository(db)
	savedRepo := repository.NewMongoSavedJobRepository(db)

	authUC := ucauth.NewService(userRepo, jwtSvc)
	userUC := ucuser.NewService(userRepo, prefRepo, savedRepo)
	jobUC := ucjob.NewService(jobRepo, appRepo, rcache, logger)
	applyUC := ucapp.NewService(appRepo, docRepo, jobRepo, files, logger)
	docUC := ucdoc.NewService(docRepo)
	sponsorUC := ucsponsor.NewService(sponsorRepo)

	authHandler := handler.NewAuthHandler(authUC)
	userHandler := handler.NewUserHandler(userUC, files)
	jobHandler := handler.NewJobHandler(jobUC, applyUC, files)
	docHandler := handler.NewDocumentHandler(docUC, files)
	sponsorHandler := handler.NewSponsorHandler(sponsorUC, files)

	authMw := middleware.NewAuthMiddleware(jwtSvc, userRepo).Middleware()

	users := r.Group("/user")
	users.Post("/register", authHandler.Register)
	users.Post("/login", authHandler.Login)
	users.Post("/logout", authHandler.Logout)

	me := users.Group("/me", authMw)
	me.Get("", userHandler.GetMe)
	me.Patch("", userHandler.UpdateMe)
	me.Delete("", userHandler.DeleteMe)
	me.Patch("/changePassword", authHandler.ChangePassword)
	me.Post("/uploadProfilePicture", userHandler.UploadProfilePicture)
	me.Get("/preferences", userHandler.GetPreferences)
	me.Patch("/preferences", userHandler.UpdatePreferences)
	me.Get("/savedJobs", userHandler.SavedJobs)
	me.Post("/savedJobs/:jobID", userHandler.SaveJob)
	me.Delete("/savedJobs/:jobID", userHandler.UnsaveJob)

	admin := users.Group("", authMw, middleware.RestrictTo(user.RoleAdmin))
	admin.Get("", userHandler.ListUsers)
	admin.Get("/:id", userHandler.GetUser)
	admin.Patch("/:id", userHandler.UpdateUser)
	admin.Delete("/:id", userHandler.DeleteUser)

	hiring := []any{authMw, middleware.RestrictTo(user.RoleEmployer, user.RoleAdmin)}

	// Static subpaths are registered ahead of /:id so they never match as
	// an id.
	jobs := r.Group("/jobs")
	jobs.Get("", jobHandler.ListJobs)
	jobs.Get("/categories", jobHandler.GetCategories)
	jobs.Get("/featured", jobHandler.GetFeatured)
	jobs.Get("/count", jobHandler.GetJobCount, hiring...)
	jobs.Get("/user-jobs", jobHandler.GetUserJobs, hiring...)
	jobs.Get("/applications", jobHandler.GetJobApplications, hiring...)
	jobs.Get("/jobapplicants", jobHandler.GetJobApplications, authMw, middleware.RestrictTo(user.RoleEmployer))
	jobs.Post("", jobHandler.CreateJob, hiring...)
	jobs.Post("/apply", jobHandler.Apply, authMw, middleware.RestrictTo(user.RoleUser))
	jobs.Delete("/job", jobHandler.DeleteJob, hiring...)
	jobs.Get("/:id", jobHandler.GetJob)
	jobs.Patch("/:id", jobHandler.UpdateJob, hiring...)

	sponsors := r.Group("/sponsors")
	sponsors.Get("", sponsorHandler.ListSponsors)
	sponsors.Post("", sponsorHandler.CreateSponsor, authMw, middleware.RestrictTo(user.RoleAdmin))

	documents := r.Group("/documents", authMw)
	documents.Post("/upload", docHandler.Upload)
}
