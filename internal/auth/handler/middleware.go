package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nandha2804/TMS/internal/auth/domain"
)

const userLocalsKey = "currentUser"

// RequireAuth validates the bearer token and re-reads the identity record;
// the token's claims must still match the stored email and role. The resolved
// user is exposed to downstream handlers via locals.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or malformed authorization header"})
	}

	user, err := h.userService.Authenticate(c.UserContext(), token)
	if err != nil {
		return respondError(c, err)
	}

	c.Locals(userLocalsKey, user)

	return c.Next()
}

// RequireRole gates a route on the authenticated user's role. Must run after
// RequireAuth.
func (h *AuthHandler) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		if user.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient permissions"})
		}

		return c.Next()
	}
}

// CurrentUser returns the identity resolved by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(userLocalsKey).(*domain.User)
	return user
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
