package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edupath-ng/edupath-go-api/internal/dto"
	"github.com/edupath-ng/edupath-go-api/internal/service"
	"github.com/edupath-ng/edupath-go-api/internal/utils"
)

// TestimonialHandler exposes testimonial submission and moderation.
type TestimonialHandler struct {
	service service.TestimonialService
	logger  zerolog.Logger
}

// NewTestimonialHandler constructs a testimonial handler.
func NewTestimonialHandler(service service.TestimonialService, logger zerolog.Logger) *TestimonialHandler {
	return &TestimonialHandler{
		service: service,
		logger:  logger.With().Str("component", "testimonial_handler").Logger(),
	}
}

// RegisterPublic wires the public listing and the external submission form.
func (h *TestimonialHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.list)
	router.Post("/external", h.createExternal)
}

// RegisterProtected wires moderation behind an admin session.
func (h *TestimonialHandler) RegisterProtected(router fiber.Router) {
	router.Post("", h.createInternal)
	router.Patch("/approve/:id", h.approve)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.remove)
}

func (h *TestimonialHandler) createInternal(c *fiber.Ctx) error {
	return h.create(c, false)
}

func (h *TestimonialHandler) createExternal(c *fiber.Ctx) error {
	return h.create(c, true)
}

func (h *TestimonialHandler) create(c *fiber.Ctx, external bool) error {
	var payload dto.TestimonialCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	var (
		testimonial interface{}
		err         error
	)
	if external {
		testimonial, err = h.service.CreateExternal(c.Context(), payload)
	} else {
		testimonial, err = h.service.CreateInternal(c.Context(), payload)
	}
	if err != nil {
		if handled, werr := utils.SendValidationError(c, err); handled {
			return werr
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("testimonial creation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create testimonial")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "testimonial created", testimonial)
}

// list returns approved testimonials by default. Admin tooling passes
// ?all=true to include the moderation queue.
func (h *TestimonialHandler) list(c *fiber.Ctx) error {
	approvedOnly := !strings.EqualFold(c.Query("all"), "true")

	testimonials, err := h.service.List(c.Context(), approvedOnly)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("testimonial listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list testimonials")
	}

	return utils.SendSuccess(c, "testimonials fetched", testimonials)
}

func (h *TestimonialHandler) approve(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid testimonial id")
	}

	testimonial, err := h.service.Approve(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTestimonialNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "testimonial not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("id", id).Msg("testimonial approval failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to approve testimonial")
	}

	return utils.SendSuccess(c, "testimonial approved", testimonial)
}

func (h *TestimonialHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid testimonial id")
	}

	testimonial, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTestimonialNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "testimonial not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("id", id).Msg("testimonial fetch failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch testimonial")
	}

	return utils.SendSuccess(c, "testimonial fetched", testimonial)
}

func (h *TestimonialHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid testimonial id")
	}

	var payload dto.TestimonialUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	testimonial, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		if handled, werr := utils.SendValidationError(c, err); handled {
			return werr
		}
		if errors.Is(err, service.ErrTestimonialNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "testimonial not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("id", id).Msg("testimonial update failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update testimonial")
	}

	return utils.SendSuccess(c, "testimonial updated", testimonial)
}

func (h *TestimonialHandler) remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid testimonial id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrTestimonialNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "testimonial not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("id", id).Msg("testimonial deletion failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete testimonial")
	}

	return utils.SendSuccess(c, "testimonial deleted", nil)
}
