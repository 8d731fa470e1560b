package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/cinofilo-api/internal/dto"
	"github.com/noah-isme/cinofilo-api/internal/repository"
	"github.com/noah-isme/cinofilo-api/internal/service"
	"github.com/noah-isme/cinofilo-api/internal/utils"
)

// MaterialHandler wires course material HTTP routes.
type MaterialHandler struct {
	service service.MaterialService
	logger  zerolog.Logger
}

// NewMaterialHandler constructs the handler.
func NewMaterialHandler(service service.MaterialService, logger zerolog.Logger) *MaterialHandler {
	return &MaterialHandler{
		service: service,
		logger:  logger.With().Str("component", "material_handler").Logger(),
	}
}

// Register attaches read endpoints available to every authenticated user.
func (h *MaterialHandler) Register(router fiber.Router) {
	router.Get("/courses/:courseId/materials", h.list)
}

// RegisterStaff attaches the staff-only material management endpoints.
func (h *MaterialHandler) RegisterStaff(router fiber.Router) {
	router.Post("/materials", h.create)
	router.Patch("/materials/:id", h.update)
	router.Delete("/materials/:id", h.delete)
}

func (h *MaterialHandler) list(c *fiber.Ctx) error {
	filter := repository.MaterialFilter{CourseID: c.Params("courseId")}
	if categoryID := c.Query("category_id"); categoryID != "" {
		filter.CategoryID = &categoryID
	}

	materials, err := h.service.List(c.Context(), filter)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "materials retrieved", materials)
}

func (h *MaterialHandler) create(c *fiber.Ctx) error {
	payload := dto.MaterialCreateRequest{
		CourseID:     c.FormValue("course_id"),
		Title:        c.FormValue("title"),
		Description:  c.FormValue("description"),
		MaterialType: c.FormValue("material_type"),
		LinkURL:      c.FormValue("link_url"),
	}
	if categoryID := c.FormValue("category_id"); categoryID != "" {
		payload.CategoryID = &categoryID
	}

	file, err := c.FormFile("file")
	if err != nil {
		file = nil
	}

	material, err := h.service.Create(c.Context(), payload, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "course not found")
		case errors.Is(err, service.ErrCategoryNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "category not found")
		case errors.Is(err, service.ErrMaterialFileRequired),
			errors.Is(err, service.ErrMaterialLinkRequired),
			isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			return h.internalError(c, err)
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "material created", material)
}

func (h *MaterialHandler) update(c *fiber.Ctx) error {
	var payload dto.MaterialUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	material, err := h.service.Update(c.Context(), c.Params("id"), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMaterialNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "material not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			return h.internalError(c, err)
		}
	}

	return utils.SendSuccess(c, "material updated", material)
}

func (h *MaterialHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrMaterialNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "material not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "material deleted", fiber.Map{"id": c.Params("id")})
}

func (h *MaterialHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
