package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mnuddindev/routinely/pkg/utils"
)

// RequireAuth rejects anonymous callers. It must run after Identify.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserID(c) == uuid.Nil {
			return utils.SendError(c, utils.NewError(utils.ErrUnauthorized.Code, "You must log in first"))
		}
		return c.Next()
	}
}

// UserID returns the caller set by Identify, uuid.Nil when anonymous.
func UserID(c *fiber.Ctx) uuid.UUID {
	id, ok := c.Locals(localUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// Token returns the raw access token and its claims, if the caller sent one.
func Token(c *fiber.Ctx) (string, *Claims) {
	token, _ := c.Locals(localToken).(string)
	claims, _ := c.Locals(localClaims).(*Claims)
	return token, claims
}
