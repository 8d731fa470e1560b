package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/cinofilo-api/internal/dto"
	"github.com/noah-isme/cinofilo-api/internal/service"
)

// EvaluationHandler wires the case study grading endpoint. Its wire contract
// is fixed: a flat response object on success and `{"error": "..."}` bodies on
// failure, unlike the envelope used by the rest of the API.
type EvaluationHandler struct {
	service service.EvaluationService
	logger  zerolog.Logger
}

// NewEvaluationHandler constructs the handler.
func NewEvaluationHandler(service service.EvaluationService, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		service: service,
		logger:  logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

// Register attaches the grading endpoint.
func (h *EvaluationHandler) Register(router fiber.Router) {
	router.Post("/case-study/evaluate", h.evaluate)
}

func (h *EvaluationHandler) evaluate(c *fiber.Ctx) error {
	profileID := userIDFromContext(c)
	if profileID == "" {
		return sendEvaluationError(c, fiber.StatusUnauthorized, "Non autorizzato")
	}

	var payload dto.EvaluateRequest
	if err := c.BodyParser(&payload); err != nil {
		return sendEvaluationError(c, fiber.StatusBadRequest, "Dati mancanti")
	}

	if payload.CaseStudyID == "" {
		return sendEvaluationError(c, fiber.StatusBadRequest, "Dati mancanti")
	}

	response, err := h.service.Evaluate(c.Context(), profileID, payload.CaseStudyID, payload.StudentAnswer)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyAnswer):
			return sendEvaluationError(c, fiber.StatusBadRequest, "Dati mancanti")
		case errors.Is(err, service.ErrCaseStudyNotFound):
			return sendEvaluationError(c, fiber.StatusNotFound, "Caso di studio non trovato")
		case errors.Is(err, service.ErrEvaluationUnavailable):
			h.logger.Error().Err(err).Msg("evaluation unavailable")
			return sendEvaluationError(c, fiber.StatusInternalServerError, "Errore nella valutazione AI")
		case errors.Is(err, service.ErrAttemptPersistence):
			h.logger.Error().Err(err).Msg("attempt persistence failed")
			return sendEvaluationError(c, fiber.StatusInternalServerError, "Errore nel salvataggio")
		default:
			h.logger.Error().Err(err).Msg("internal server error")
			return sendEvaluationError(c, fiber.StatusInternalServerError, "Errore interno del server")
		}
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func sendEvaluationError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}
