package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobify/internal/delivery/http/middleware"
	"jobify/internal/domain/preference"
	"jobify/internal/domain/user"
	"jobify/internal/pkg/response"
	"jobify/internal/storage"
	ucuser "jobify/internal/usecase/user"
)

type UserHandler struct {
	uc    ucuser.Usecase
	files *storage.Local
}

func NewUserHandler(uc ucuser.Usecase, files *storage.Local) *UserHandler {
	return &UserHandler{uc: uc, files: files}
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, "success", fiber.Map{"user": usr})
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	fields := map[string]any{}
	if err := c.Bind().Body(&fields); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.UpdateSelf(c.Context(), usr.ID, fields)
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", fiber.Map{"user": updated})
}

func (h *UserHandler) DeleteMe(c fiber.Ctx) error {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}
	if err := h.uc.Delete(c.Context(), usr.ID); err != nil {
		return mapUserError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) UploadProfilePicture(c fiber.Ctx) error {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	fh, err := c.FormFile("profilePicture")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Please upload a profile picture", nil, err)
	}

	path, err := h.files.Save(fh, storage.SubdirProfile)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}

	updated, err := h.uc.SetProfilePicture(c.Context(), usr.ID, path)
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", fiber.Map{"user": updated})
}

func (h *UserHandler) GetPreferences(c fiber.Ctx) error {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	prefs, err := h.uc.Preferences(c.Context(), usr.ID)
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", fiber.Map{"preferences": prefs})
}

type preferencesRequest struct {
	JobAlerts         preference.JobAlerts `json:"jobAlerts"`
	PreferredJobTypes []string             `json:"preferredJobTypes"`
}

func (h *UserHandler) UpdatePreferences(c fiber.Ctx) error {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	var req preferencesRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	prefs, err := h.uc.UpdatePreferences(c.Context(), preference.Preferences{
		User:              usr.ID,
		JobAlerts:         req.JobAlerts,
		PreferredJobTypes: req.PreferredJobTypes,
	})
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", fiber.Map{"preferences": prefs})
}

func (h *UserHandler) SavedJobs(c fiber.Ctx) error {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	saved, err := h.uc.SavedJobs(c.Context(), usr.ID)
	if err != nil {
		return mapUserError(err)
	}
	return response.List(c, fiber.StatusOK, "success", len(saved), fiber.Map{"savedJobs": saved})
}

func (h *UserHandler) SaveJob(c fiber.Ctx) error {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	jobID, err := primitive.ObjectIDFromHex(c.Params("jobID"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	saved, err := h.uc.SaveJob(c.Context(), usr.ID, jobID)
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusCreated, "success", fiber.Map{"savedJob": saved})
}

func (h *UserHandler) UnsaveJob(c fiber.Ctx) error {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	jobID, err := primitive.ObjectIDFromHex(c.Params("jobID"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	if err := h.uc.UnsaveJob(c.Context(), usr.ID, jobID); err != nil {
		return mapUserError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Admin handlers.

func (h *UserHandler) ListUsers(c fiber.Ctx) error {
	users, err := h.uc.List(c.Context(), c.Queries())
	if err != nil {
		return mapUserError(err)
	}
	return response.List(c, fiber.StatusOK, "success", len(users), fiber.Map{"users": users})
}

func (h *UserHandler) GetUser(c fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	usr, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", fiber.Map{"user": usr})
}

func (h *UserHandler) UpdateUser(c fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	fields := map[string]any{}
	if err := c.Bind().Body(&fields); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.UpdateByAdmin(c.Context(), id, fields)
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", fiber.Map{"user": updated})
}

func (h *UserHandler) DeleteUser(c fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, "User has been deleted", nil)
}

func mapUserError(err error) error {
	switch {
	case errors.Is(err, ucuser.ErrPasswordUpdate):
		return middleware.NewAppError(fiber.StatusBadRequest,
			"This route is not for updating password. Use /me/changePassword", nil, err)
	case errors.Is(err, ucuser.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucuser.ErrNotFound), errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, ucuser.ErrDuplicate):
		return middleware.NewAppError(fiber.StatusConflict, "User already exists", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
