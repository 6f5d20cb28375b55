package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobify/internal/delivery/http/middleware"
	"jobify/internal/pkg/response"
	"jobify/internal/storage"
	ucapp "jobify/internal/usecase/application"
	ucjob "jobify/internal/usecase/job"
)

type JobHandler struct {
	jobs  ucjob.Usecase
	apps  ucapp.Usecase
	files *storage.Local
}

func NewJobHandler(jobs ucjob.Usecase, apps ucapp.Usecase, files *storage.Local) *JobHandler {
	return &JobHandler{jobs: jobs, apps: apps, files: files}
}

// ListJobs feeds the raw query parameters through the query translator.
// An empty result is reported as 404, the convention clients expect.
func (h *JobHandler) ListJobs(c fiber.Ctx) error {
	jobs, err := h.jobs.List(c.Context(), c.Queries())
	if err != nil {
		return mapJobError(err)
	}
	if len(jobs) == 0 {
		return middleware.NewAppError(fiber.StatusNotFound, "No Job Found", nil, nil)
	}
	return response.List(c, fiber.StatusOK, "successful", len(jobs), fiber.Map{"jobs": jobs})
}

func (h *JobHandler) GetJob(c fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	j, err := h.jobs.GetByID(c.Context(), id)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, "successful", j)
}

func (h *JobHandler) CreateJob(c fiber.Ctx) error {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	var in ucjob.CreateInput
	if err := c.Bind().Body(&in); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Please fill all required fields correctly", nil, err)
	}

	created, err := h.jobs.Create(c.Context(), usr, in)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusCreated, "successful", created)
}

func (h *JobHandler) UpdateJob(c fiber.Ctx) error {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	fields := map[string]any{}
	if err := c.Bind().Body(&fields); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.jobs.Update(c.Context(), usr, id, fields)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, "successful", updated)
}

type deleteJobRequest struct {
	ID string `json:"id"`
}

func (h *JobHandler) DeleteJob(c fiber.Ctx) error {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	var req deleteJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	deleted, err := h.jobs.Delete(c.Context(), usr, id)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, "successful", deleted)
}

func (h *JobHandler) GetCategories(c fiber.Ctx) error {
	cats, err := h.jobs.Categories(c.Context())
	if err != nil {
		return mapJobError(err)
	}
	return response.List(c, fiber.StatusOK, "successful", len(cats), fiber.Map{"categories": cats})
}

func (h *JobHandler) GetFeatured(c fiber.Ctx) error {
	featured, err := h.jobs.Featured(c.Context())
	if err != nil {
		return mapJobError(err)
	}
	return response.List(c, fiber.StatusOK, "successful", len(featured), fiber.Map{"featured": featured})
}

func (h *JobHandler) GetJobCount(c fiber.Ctx) error {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	count, err := h.jobs.CountByCreator(c.Context(), usr.ID)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", fiber.Map{"jobCount": count})
}

func (h *JobHandler) GetUserJobs(c fiber.Ctx) error {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	jobs, err := h.jobs.ByCreator(c.Context(), usr.ID)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", fiber.Map{"userJobs": jobs})
}

func (h *JobHandler) GetJobApplications(c fiber.Ctx) error {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	apps, err := h.jobs.ApplicationsForCreator(c.Context(), usr.ID)
	if err != nil {
		return mapJobError(err)
	}
	return response.List(c, fiber.StatusOK, "success", len(apps), fiber.Map{"applications": apps})
}

// Apply handles the multipart job application: cv (required) and
// coverLetter (optional) file fields, plus job id and cover letter text.
func (h *JobHandler) Apply(c fiber.Ctx) error {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	jobID, err := primitive.ObjectIDFromHex(c.FormValue("job"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	cv, err := c.FormFile("cv")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Please upload resume", nil, err)
	}

	resumePath, err := h.files.Save(cv, storage.SubdirDocuments)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}

	coverLetterPath := ""
	if clFile, err := c.FormFile("coverLetter"); err == nil && clFile != nil {
		coverLetterPath, err = h.files.Save(clFile, storage.SubdirDocuments)
		if err != nil {
			return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
	}

	app, err := h.apps.Apply(c.Context(), ucapp.ApplyInput{
		UserID:          usr.ID,
		JobID:           jobID,
		CoverLetter:     c.FormValue("coverLetter"),
		ResumePath:      resumePath,
		CoverLetterPath: coverLetterPath,
	})
	if err != nil {
		return mapApplicationError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Job application Successful", app)
}

func mapJobError(err error) error {
	switch {
	case errors.Is(err, ucjob.ErrFeaturedNotAllowed):
		return middleware.NewAppError(fiber.StatusBadRequest, "Only premium employers can feature jobs", nil, err)
	case errors.Is(err, ucjob.ErrValidation):
		return middleware.NewAppError(fiber.StatusBadRequest, "Please fill all required fields correctly", nil, err)
	case errors.Is(err, ucjob.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, ucjob.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "You do not have permission to modify this job", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func mapApplicationError(err error) error {
	switch {
	case errors.Is(err, ucapp.ErrResumeRequired):
		return middleware.NewAppError(fiber.StatusBadRequest, "Please upload resume", nil, err)
	case errors.Is(err, ucapp.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
