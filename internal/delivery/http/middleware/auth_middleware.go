package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobify/internal/domain/user"
	"jobify/internal/pkg/jwt"
)

const ctxUserKey = "current_user"

// UserResolver turns the identifier embedded in a token back into a
// live account. A token whose account has been deleted must not pass.
type UserResolver interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (user.User, error)
}

type AuthMiddleware struct {
	jwt   jwt.Service
	users UserResolver
}

func NewAuthMiddleware(jwtSvc jwt.Service, users UserResolver) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc, users: users}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
		}

		claims, err := m.jwt.Validate(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		id, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		u, err := m.users.FindByID(c.Context(), id)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return NewAppError(fiber.StatusUnauthorized, "User belonging to this token no longer exists", nil, err)
			}
			return NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}

		c.Locals(ctxUserKey, u.Sanitized())
		return c.Next()
	}
}

// CurrentUser returns the identity the auth middleware attached.
func CurrentUser(c fiber.Ctx) (user.User, bool) {
	u, ok := c.Locals(ctxUserKey).(user.User)
	return u, ok
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
