package middleware

import (
	"github.com/gofiber/fiber/v3"

	"jobify/internal/domain/user"
)

// RestrictTo passes only identities whose role is in the permitted set.
// It assumes the auth middleware already ran on the route.
func RestrictTo(roles ...user.Role) fiber.Handler {
	permitted := make(map[user.Role]bool, len(roles))
	for _, r := range roles {
		permitted[r] = true
	}

	return func(c fiber.Ctx) error {
		u, ok := CurrentUser(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
		}
		if !permitted[u.Role] {
			return NewAppError(fiber.StatusForbidden, "You do not have permission to perform this action", nil, nil)
		}
		return c.Next()
	}
}
