package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/cinofilo-api/internal/dto"
	"github.com/noah-isme/cinofilo-api/internal/service"
	"github.com/noah-isme/cinofilo-api/internal/utils"
)

// CategoryHandler wires material category HTTP routes.
type CategoryHandler struct {
	service service.CategoryService
	logger  zerolog.Logger
}

// NewCategoryHandler constructs the handler.
func NewCategoryHandler(service service.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger.With().Str("component", "category_handler").Logger(),
	}
}

// Register attaches read endpoints available to every authenticated user.
func (h *CategoryHandler) Register(router fiber.Router) {
	router.Get("/courses/:courseId/categories", h.list)
}

// RegisterStaff attaches the staff-only category management endpoints.
func (h *CategoryHandler) RegisterStaff(router fiber.Router) {
	router.Post("/categories", h.create)
	router.Patch("/categories/:id", h.update)
	router.Delete("/categories/:id", h.delete)
	router.Put("/courses/:courseId/categories/order", h.reorder)
}

func (h *CategoryHandler) list(c *fiber.Ctx) error {
	categories, err := h.service.ListByCourse(c.Context(), c.Params("courseId"))
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "categories retrieved", categories)
}

func (h *CategoryHandler) create(c *fiber.Ctx) error {
	var payload dto.CategoryCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	category, err := h.service.Create(c.Context(), payload)
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

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "category created", category)
}

func (h *CategoryHandler) update(c *fiber.Ctx) error {
	var payload dto.CategoryUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	category, err := h.service.Update(c.Context(), c.Params("id"), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "category not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			return h.internalError(c, err)
		}
	}

	return utils.SendSuccess(c, "category updated", category)
}

func (h *CategoryHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "category not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "category deleted", fiber.Map{"id": c.Params("id")})
}

// reorder applies a complete new ordering for a course's categories. The
// service applies all positions in one transaction, so a payload naming an
// unknown category leaves the existing order untouched.
func (h *CategoryHandler) reorder(c *fiber.Ctx) error {
	var payload dto.CategoryOrderRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	categories, err := h.service.Reorder(c.Context(), c.Params("courseId"), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "category not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			return h.internalError(c, err)
		}
	}

	return utils.SendSuccess(c, "categories reordered", categories)
}

func (h *CategoryHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
