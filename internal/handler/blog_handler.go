package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edupath-ng/edupath-go-api/internal/dto"
	"github.com/edupath-ng/edupath-go-api/internal/service"
	"github.com/edupath-ng/edupath-go-api/internal/utils"
)

// BlogHandler exposes editorial article routes.
type BlogHandler struct {
	service service.BlogService
	logger  zerolog.Logger
}

// NewBlogHandler constructs a blog handler.
func NewBlogHandler(service service.BlogService, logger zerolog.Logger) *BlogHandler {
	return &BlogHandler{
		service: service,
		logger:  logger.With().Str("component", "blog_handler").Logger(),
	}
}

// RegisterPublic wires the read-only article routes.
func (h *BlogHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

// RegisterProtected wires article management behind an admin session.
func (h *BlogHandler) RegisterProtected(router fiber.Router) {
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.remove)
}

func (h *BlogHandler) create(c *fiber.Ctx) error {
	var payload dto.BlogCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	blog, err := h.service.Create(c.Context(), payload)
	if err != nil {
		if handled, werr := utils.SendValidationError(c, err); handled {
			return werr
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("blog creation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create blog")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "blog created", blog)
}

func (h *BlogHandler) list(c *fiber.Ctx) error {
	page, pageSize := parsePagination(c)

	response, err := h.service.List(c.Context(), page, pageSize)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("blog listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list blogs")
	}

	return utils.SendSuccess(c, "blogs fetched", response)
}

func (h *BlogHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid blog id")
	}

	blog, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBlogNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "blog not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("id", id).Msg("blog fetch failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch blog")
	}

	return utils.SendSuccess(c, "blog fetched", blog)
}

func (h *BlogHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid blog id")
	}

	var payload dto.BlogUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	blog, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		if handled, werr := utils.SendValidationError(c, err); handled {
			return werr
		}
		if errors.Is(err, service.ErrBlogNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "blog not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("id", id).Msg("blog update failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update blog")
	}

	return utils.SendSuccess(c, "blog updated", blog)
}

func (h *BlogHandler) remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid blog id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrBlogNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "blog not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("id", id).Msg("blog deletion failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete blog")
	}

	return utils.SendSuccess(c, "blog deleted", nil)
}
