package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/cinofilo-api/internal/dto"
	"github.com/noah-isme/cinofilo-api/internal/service"
	"github.com/noah-isme/cinofilo-api/internal/utils"
)

// LessonHandler wires lesson calendar HTTP routes.
type LessonHandler struct {
	service service.LessonService
	logger  zerolog.Logger
}

// NewLessonHandler constructs the handler.
func NewLessonHandler(service service.LessonService, logger zerolog.Logger) *LessonHandler {
	return &LessonHandler{
		service: service,
		logger:  logger.With().Str("component", "lesson_handler").Logger(),
	}
}

// Register attaches endpoints available to every authenticated user.
func (h *LessonHandler) Register(router fiber.Router) {
	router.Get("/classes/:classId/lessons", h.listByClass)
	router.Get("/lessons/upcoming", h.listUpcoming)
	router.Get("/lessons/:id", h.get)
}

// RegisterStaff attaches the staff-only lesson management endpoints.
func (h *LessonHandler) RegisterStaff(router fiber.Router) {
	router.Post("/lessons", h.create)
	router.Patch("/lessons/:id", h.update)
	router.Delete("/lessons/:id", h.delete)
}

func (h *LessonHandler) listByClass(c *fiber.Ctx) error {
	lessons, err := h.service.ListByClass(c.Context(), c.Params("classId"))
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "lessons retrieved", lessons)
}

func (h *LessonHandler) listUpcoming(c *fiber.Ctx) error {
	profileID := userIDFromContext(c)
	if profileID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	limit := 5
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}

	lessons, err := h.service.ListUpcomingForStudent(c.Context(), profileID, limit)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "upcoming lessons retrieved", lessons)
}

func (h *LessonHandler) get(c *fiber.Ctx) error {
	lesson, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "lesson not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "lesson retrieved", lesson)
}

func (h *LessonHandler) create(c *fiber.Ctx) error {
	var payload dto.LessonCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	lesson, err := h.service.Create(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClassNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "class not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			return h.internalError(c, err)
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "lesson scheduled", lesson)
}

func (h *LessonHandler) update(c *fiber.Ctx) error {
	var payload dto.LessonUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	lesson, err := h.service.Update(c.Context(), c.Params("id"), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLessonNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "lesson not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			return h.internalError(c, err)
		}
	}

	return utils.SendSuccess(c, "lesson updated", lesson)
}

func (h *LessonHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "lesson not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "lesson deleted", fiber.Map{"id": c.Params("id")})
}

func (h *LessonHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
