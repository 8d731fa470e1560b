package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/cinofilo-api/internal/dto"
	"github.com/noah-isme/cinofilo-api/internal/service"
	"github.com/noah-isme/cinofilo-api/internal/utils"
)

// CaseStudyHandler wires case study catalog HTTP routes. The student path
// serves the stripped view; the staff path exposes the model answer and hints.
type CaseStudyHandler struct {
	service service.CaseStudyService
	logger  zerolog.Logger
}

// NewCaseStudyHandler constructs the handler.
func NewCaseStudyHandler(service service.CaseStudyService, logger zerolog.Logger) *CaseStudyHandler {
	return &CaseStudyHandler{
		service: service,
		logger:  logger.With().Str("component", "case_study_handler").Logger(),
	}
}

// Register attaches the student-facing endpoints.
func (h *CaseStudyHandler) Register(router fiber.Router) {
	router.Get("/courses/:courseId/case-studies", h.listForStudent)
	router.Get("/case-studies/:id", h.getForStudent)
	router.Get("/case-studies/:id/attempts/me", h.listOwnAttempts)
}

// RegisterStaff attaches the staff-only catalog management endpoints.
func (h *CaseStudyHandler) RegisterStaff(router fiber.Router) {
	router.Get("/courses/:courseId/case-studies", h.listForTutor)
	router.Get("/case-studies/:id", h.getForTutor)
	router.Post("/case-studies", h.create)
	router.Patch("/case-studies/:id", h.update)
	router.Delete("/case-studies/:id", h.delete)
	router.Get("/case-studies/:id/attempts", h.listAttempts)
}

func (h *CaseStudyHandler) listForStudent(c *fiber.Ctx) error {
	profileID := userIDFromContext(c)
	if profileID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	caseStudies, err := h.service.ListForStudent(c.Context(), c.Params("courseId"), profileID)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "case studies retrieved", caseStudies)
}

func (h *CaseStudyHandler) getForStudent(c *fiber.Ctx) error {
	profileID := userIDFromContext(c)
	if profileID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	caseStudy, err := h.service.GetForStudent(c.Context(), c.Params("id"), profileID)
	if err != nil {
		if errors.Is(err, service.ErrCaseStudyNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "case study not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "case study retrieved", caseStudy)
}

func (h *CaseStudyHandler) listForTutor(c *fiber.Ctx) error {
	caseStudies, err := h.service.ListForTutor(c.Context(), c.Params("courseId"))
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "case studies retrieved", caseStudies)
}

func (h *CaseStudyHandler) getForTutor(c *fiber.Ctx) error {
	caseStudy, err := h.service.GetForTutor(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrCaseStudyNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "case study not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "case study retrieved", caseStudy)
}

func (h *CaseStudyHandler) create(c *fiber.Ctx) error {
	var payload dto.CaseStudyCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	caseStudy, err := h.service.Create(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "course not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			return h.internalError(c, err)
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "case study created", caseStudy)
}

func (h *CaseStudyHandler) update(c *fiber.Ctx) error {
	var payload dto.CaseStudyUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	caseStudy, err := h.service.Update(c.Context(), c.Params("id"), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCaseStudyNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "case study not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			return h.internalError(c, err)
		}
	}

	return utils.SendSuccess(c, "case study updated", caseStudy)
}

func (h *CaseStudyHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrCaseStudyNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "case study not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "case study deleted", fiber.Map{"id": c.Params("id")})
}

func (h *CaseStudyHandler) listOwnAttempts(c *fiber.Ctx) error {
	profileID := userIDFromContext(c)
	if profileID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	attempts, err := h.service.ListOwnAttempts(c.Context(), c.Params("id"), profileID)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "attempts retrieved", attempts)
}

func (h *CaseStudyHandler) listAttempts(c *fiber.Ctx) error {
	attempts, err := h.service.ListAttempts(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrCaseStudyNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "case study not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "attempts retrieved", attempts)
}

func (h *CaseStudyHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
