package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/cinofilo-api/internal/dto"
	"github.com/noah-isme/cinofilo-api/internal/service"
	"github.com/noah-isme/cinofilo-api/internal/utils"
)

// ClassHandler wires class edition HTTP routes.
type ClassHandler struct {
	service service.ClassService
	logger  zerolog.Logger
}

// NewClassHandler constructs the handler.
func NewClassHandler(service service.ClassService, logger zerolog.Logger) *ClassHandler {
	return &ClassHandler{
		service: service,
		logger:  logger.With().Str("component", "class_handler").Logger(),
	}
}

// Register attaches endpoints available to every authenticated user.
func (h *ClassHandler) Register(router fiber.Router) {
	router.Get("/courses/:courseId/classes", h.listByCourse)
	router.Get("/classes/:id", h.get)
	router.Post("/classes/join", h.join)
	router.Post("/classes/:id/dogs", h.assignDog)
	router.Get("/classes/:id/dogs", h.listDogs)
}

// RegisterStaff attaches the staff-only class management endpoints.
func (h *ClassHandler) RegisterStaff(router fiber.Router) {
	router.Post("/classes", h.create)
	router.Patch("/classes/:id", h.update)
	router.Delete("/classes/:id", h.delete)
	router.Get("/classes/:id/students", h.listStudents)
}

func (h *ClassHandler) listByCourse(c *fiber.Ctx) error {
	classes, err := h.service.ListByCourse(c.Context(), c.Params("courseId"), callerIsStaff(c))
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "classes retrieved", classes)
}

func (h *ClassHandler) get(c *fiber.Ctx) error {
	class, err := h.service.Get(c.Context(), c.Params("id"), callerIsStaff(c))
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "class not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "class retrieved", class)
}

func (h *ClassHandler) create(c *fiber.Ctx) error {
	var payload dto.ClassCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	class, err := h.service.Create(c.Context(), payload)
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

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "class created", class)
}

func (h *ClassHandler) update(c *fiber.Ctx) error {
	var payload dto.ClassUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	class, err := h.service.Update(c.Context(), c.Params("id"), payload)
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

	return utils.SendSuccess(c, "class updated", class)
}

func (h *ClassHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "class not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "class deleted", fiber.Map{"id": c.Params("id")})
}

func (h *ClassHandler) join(c *fiber.Ctx) error {
	profileID := userIDFromContext(c)
	if profileID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload dto.JoinClassRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	class, err := h.service.Join(c.Context(), profileID, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteCodeInvalid):
			return utils.SendError(c, fiber.StatusNotFound, "invite code invalid")
		case errors.Is(err, service.ErrAlreadyEnrolled):
			return utils.SendError(c, fiber.StatusConflict, "already enrolled")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			return h.internalError(c, err)
		}
	}

	return utils.SendSuccess(c, "class joined", class)
}

func (h *ClassHandler) listStudents(c *fiber.Ctx) error {
	students, err := h.service.ListStudents(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "class not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *ClassHandler) assignDog(c *fiber.Ctx) error {
	profileID := userIDFromContext(c)
	if profileID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload dto.AssignDogRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.AssignDog(c.Context(), c.Params("id"), profileID, payload); err != nil {
		switch {
		case errors.Is(err, service.ErrNotEnrolled):
			return utils.SendError(c, fiber.StatusForbidden, "not enrolled in class")
		case errors.Is(err, service.ErrDogNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "dog not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			return h.internalError(c, err)
		}
	}

	return utils.SendSuccess(c, "dog assigned", nil)
}

func (h *ClassHandler) listDogs(c *fiber.Ctx) error {
	dogs, err := h.service.ListDogs(c.Context(), c.Params("id"))
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "dogs retrieved", dogs)
}

func (h *ClassHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
