package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edupath-ng/edupath-go-api/internal/dto"
	"github.com/edupath-ng/edupath-go-api/internal/middleware"
	"github.com/edupath-ng/edupath-go-api/internal/models"
	"github.com/edupath-ng/edupath-go-api/internal/service"
	"github.com/edupath-ng/edupath-go-api/internal/utils"
)

// AdminHandler exposes back-office account management and login.
type AdminHandler struct {
	service service.AdminService
	logger  zerolog.Logger
}

// NewAdminHandler constructs an admin handler.
func NewAdminHandler(service service.AdminService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_handler").Logger(),
	}
}

// RegisterPublic wires the admin login route.
func (h *AdminHandler) RegisterPublic(router fiber.Router) {
	router.Post("/login", h.login)
}

// RegisterProtected wires account management behind an admin session.
// Removing an account is restricted to superadmins.
func (h *AdminHandler) RegisterProtected(router fiber.Router) {
	router.Post("/create", h.create)
	router.Get("", h.list)
	router.Get("/username/:username", h.getByUsername)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", middleware.RequireRole(models.AdminRoleSuper), h.remove)
}

func (h *AdminHandler) create(c *fiber.Ctx) error {
	var payload dto.AdminCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Create(c.Context(), payload)
	if err != nil {
		if handled, werr := utils.SendValidationError(c, err); handled {
			return werr
		}
		switch {
		case errors.Is(err, service.ErrAdminUsernameTaken):
			return utils.SendError(c, fiber.StatusConflict, "username already taken")
		case errors.Is(err, service.ErrAdminEmailTaken):
			return utils.SendError(c, fiber.StatusConflict, "email already in use")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("admin creation failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create admin")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "admin created", response)
}

func (h *AdminHandler) login(c *fiber.Ctx) error {
	var payload dto.AdminLoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Login(c.Context(), payload)
	if err != nil {
		if handled, werr := utils.SendValidationError(c, err); handled {
			return werr
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid username or password")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("admin login failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to log in")
	}

	return utils.SendSuccess(c, "login successful", response)
}

func (h *AdminHandler) list(c *fiber.Ctx) error {
	response, err := h.service.List(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("admin listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list admins")
	}

	return utils.SendSuccess(c, "admins fetched", response)
}

func (h *AdminHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid admin id")
	}

	response, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "admin not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("id", id).Msg("admin fetch failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch admin")
	}

	return utils.SendSuccess(c, "admin fetched", response)
}

func (h *AdminHandler) getByUsername(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid username")
	}

	response, err := h.service.GetByUsername(c.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "admin not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Str("username", username).Msg("admin fetch failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch admin")
	}

	return utils.SendSuccess(c, "admin fetched", response)
}

func (h *AdminHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid admin id")
	}

	var payload dto.AdminUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		if handled, werr := utils.SendValidationError(c, err); handled {
			return werr
		}
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "admin not found")
		case errors.Is(err, service.ErrAdminUsernameTaken):
			return utils.SendError(c, fiber.StatusConflict, "username already taken")
		case errors.Is(err, service.ErrAdminEmailTaken):
			return utils.SendError(c, fiber.StatusConflict, "email already in use")
		default:
			requestLogger(h.logger, c).Error().Err(err).Uint("id", id).Msg("admin update failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update admin")
		}
	}

	return utils.SendSuccess(c, "admin updated", response)
}

func (h *AdminHandler) remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid admin id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "admin not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("id", id).Msg("admin deletion failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete admin")
	}

	return utils.SendSuccess(c, "admin deleted", nil)
}
