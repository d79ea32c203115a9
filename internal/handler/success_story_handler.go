package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edupath-ng/edupath-go-api/internal/dto"
	"github.com/edupath-ng/edupath-go-api/internal/service"
	"github.com/edupath-ng/edupath-go-api/internal/utils"
)

// SuccessStoryHandler exposes admission highlight routes.
type SuccessStoryHandler struct {
	service service.SuccessStoryService
	logger  zerolog.Logger
}

// NewSuccessStoryHandler constructs a success story handler.
func NewSuccessStoryHandler(service service.SuccessStoryService, logger zerolog.Logger) *SuccessStoryHandler {
	return &SuccessStoryHandler{
		service: service,
		logger:  logger.With().Str("component", "success_story_handler").Logger(),
	}
}

// RegisterPublic wires the read-only story routes.
func (h *SuccessStoryHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

// RegisterProtected wires story management behind an admin session.
func (h *SuccessStoryHandler) RegisterProtected(router fiber.Router) {
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.remove)
}

func (h *SuccessStoryHandler) create(c *fiber.Ctx) error {
	var payload dto.SuccessStoryCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	story, err := h.service.Create(c.Context(), payload)
	if err != nil {
		if handled, werr := utils.SendValidationError(c, err); handled {
			return werr
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("success story creation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create success story")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "success story created", story)
}

func (h *SuccessStoryHandler) list(c *fiber.Ctx) error {
	stories, err := h.service.List(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("success story listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list success stories")
	}

	return utils.SendSuccess(c, "success stories fetched", stories)
}

func (h *SuccessStoryHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid success story id")
	}

	story, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSuccessStoryNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "success story not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("id", id).Msg("success story fetch failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch success story")
	}

	return utils.SendSuccess(c, "success story fetched", story)
}

func (h *SuccessStoryHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid success story id")
	}

	var payload dto.SuccessStoryUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	story, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		if handled, werr := utils.SendValidationError(c, err); handled {
			return werr
		}
		if errors.Is(err, service.ErrSuccessStoryNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "success story not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("id", id).Msg("success story update failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update success story")
	}

	return utils.SendSuccess(c, "success story updated", story)
}

func (h *SuccessStoryHandler) remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid success story id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrSuccessStoryNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "success story not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("id", id).Msg("success story deletion failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete success story")
	}

	return utils.SendSuccess(c, "success story deleted", nil)
}
