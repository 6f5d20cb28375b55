package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"jobify/internal/delivery/http/middleware"
	"jobify/internal/pkg/response"
	"jobify/internal/storage"
	ucsponsor "jobify/internal/usecase/sponsor"
)

type SponsorHandler struct {
	uc    ucsponsor.Usecase
	files *storage.Local
}

func NewSponsorHandler(uc ucsponsor.Usecase, files *storage.Local) *SponsorHandler {
	return &SponsorHandler{uc: uc, files: files}
}

func (h *SponsorHandler) ListSponsors(c fiber.Ctx) error {
	sponsors, err := h.uc.List(c.Context())
	if err != nil {
		return mapSponsorError(err)
	}
	if len(sponsors) == 0 {
		return middleware.NewAppError(fiber.StatusNotFound, "No sponsors found", nil, nil)
	}
	return response.List(c, fiber.StatusOK, "successful", len(sponsors), fiber.Map{"sponsors": sponsors})
}

func (h *SponsorHandler) CreateSponsor(c fiber.Ctx) error {
	name := c.FormValue("name")
	if name == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Please input Sponsor Name", nil, nil)
	}

	logo, err := c.FormFile("logo")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Please upload Sponsor logo", nil, err)
	}

	logoPath, err := h.files.Save(logo, storage.SubdirLogos)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}

	created, err := h.uc.Create(c.Context(), name, logoPath)
	if err != nil {
		return mapSponsorError(err)
	}
	return response.Success(c, fiber.StatusCreated, "successful", fiber.Map{"sponsor": created})
}

func mapSponsorError(err error) error {
	switch {
	case errors.Is(err, ucsponsor.ErrNameRequired):
		return middleware.NewAppError(fiber.StatusBadRequest, "Please input Sponsor Name", nil, err)
	case errors.Is(err, ucsponsor.ErrLogoRequired):
		return middleware.NewAppError(fiber.StatusBadRequest, "Please upload Sponsor logo", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
