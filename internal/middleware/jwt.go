package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/edupath-ng/edupath-go-api/internal/service"
	"github.com/edupath-ng/edupath-go-api/internal/utils"
)

// JWTProtected validates bearer tokens for one audience. Admin and student
// tokens are signed with different secrets, so a student token can never
// open an admin route. On success the subject id lands in the "user_id"
// local and the role in "user_role".
func JWTProtected(secret, audience string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims := &service.AccessClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		}, jwt.WithAudience(audience))
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		subject, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		c.Locals("user_id", uint(subject))
		if claims.Role != "" {
			c.Locals("user_role", strings.ToLower(claims.Role))
		}

		return c.Next()
	}
}

// AuthenticatedUserID returns the subject id set by JWTProtected, if any.
func AuthenticatedUserID(c *fiber.Ctx) *uint {
	if value := c.Locals("user_id"); value != nil {
		if id, ok := value.(uint); ok {
			return &id
		}
	}
	return nil
}
