package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"jobify/internal/delivery/http/middleware"
	"jobify/internal/pkg/response"
	"jobify/internal/storage"
	ucdoc "jobify/internal/usecase/document"
)

type DocumentHandler struct {
	uc    ucdoc.Usecase
	files *storage.Local
}

func NewDocumentHandler(uc ucdoc.Usecase, files *storage.Local) *DocumentHandler {
	return &DocumentHandler{uc: uc, files: files}
}

// Upload accepts either a multipart "document" file or a file:// URL in
// the form body, whichever the client has.
func (h *DocumentHandler) Upload(c fiber.Ctx) error {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
	}

	fileURL := ""
	if fh, err := c.FormFile("document"); err == nil && fh != nil {
		path, err := h.files.Save(fh, storage.SubdirDocuments)
		if err != nil {
			return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
		fileURL = path
	} else if raw := strings.TrimSpace(c.FormValue("fileUrl")); strings.HasPrefix(raw, "file://") {
		fileURL = raw
	}

	if fileURL == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "No valid file or file URL provided", nil, nil)
	}

	doc, err := h.uc.Upload(c.Context(), ucdoc.UploadInput{
		UserID:  usr.ID,
		Type:    c.FormValue("type"),
		FileURL: fileURL,
	})
	if err != nil {
		return mapDocumentError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Document uploaded successfully", fiber.Map{"document": doc})
}

func mapDocumentError(err error) error {
	switch {
	case errors.Is(err, ucdoc.ErrInvalidType):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid document type", nil, err)
	case errors.Is(err, ucdoc.ErrInvalidFile):
		return middleware.NewAppError(fiber.StatusBadRequest, "No valid file or file URL provided", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
