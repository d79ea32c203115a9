package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/edupath-ng/edupath-go-api/internal/middleware"
	"github.com/edupath-ng/edupath-go-api/internal/service"
)

func protectedApp(secret, audience string) *fiber.App {
	app := fiber.New()
	app.Get("/protected", middleware.JWTProtected(secret, audience), func(c *fiber.Ctx) error {
		id := middleware.AuthenticatedUserID(c)
		if id == nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"id": *id, "role": c.Locals("user_role")})
	})
	return app
}

func TestJWTProtectedAcceptsValidToken(t *testing.T) {
	issuer := service.NewTokenIssuer("secret", service.TokenAudienceAdmin, time.Hour)
	token, err := issuer.Issue(9, "admin")
	require.NoError(t, err)

	app := protectedApp("secret", service.TokenAudienceAdmin)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTProtectedRejectsMissingHeader(t *testing.T) {
	app := protectedApp("secret", service.TokenAudienceAdmin)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsWrongAudience(t *testing.T) {
	// A student token must not open an admin route even if the secrets matched.
	issuer := service.NewTokenIssuer("secret", service.TokenAudienceStudent, time.Hour)
	token, err := issuer.Issue(9, "")
	require.NoError(t, err)

	app := protectedApp("secret", service.TokenAudienceAdmin)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsWrongSecret(t *testing.T) {
	issuer := service.NewTokenIssuer("other-secret", service.TokenAudienceAdmin, time.Hour)
	token, err := issuer.Issue(9, "admin")
	require.NoError(t, err)

	app := protectedApp("secret", service.TokenAudienceAdmin)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	app := fiber.New()
	app.Get("/admin-only",
		func(c *fiber.Ctx) error { c.Locals("user_role", "admin"); return c.Next() },
		middleware.RequireRole("superadmin"),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin-only", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
