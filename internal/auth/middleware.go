package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	user "github.com/mnuddindev/routinely/internal/models/user"
	"github.com/mnuddindev/routinely/pkg/logger"
)

const (
	localUserID = "user_id"
	localToken  = "access_token"
	localClaims = "claims"

	cookieName = "access_token"
)

// TokenFromRequest returns the bearer token, falling back to the access_token cookie.
func TokenFromRequest(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return c.Cookies(cookieName)
}

// Identify resolves the caller from its access token. Requests without a
// usable token continue anonymously; a bad, expired or revoked token only
// clears the cookie, so RequireAuth is what turns callers away.
func Identify(opt Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFromRequest(c)
		if token == "" {
			return c.Next()
		}

		if opt.Revoker != nil && opt.Revoker.IsRevoked(c.Context(), token) {
			opt.Logger.Warn(c.Context()).WithFields("path", c.Path()).Logs("Attempted use of revoked access token")
			return anonymous(c)
		}

		claims, err := opt.Tokens.Verify(token)
		if err != nil {
			opt.Logger.Warn(c.Context()).WithFields("error", err).Logs("Access token invalid")
			return anonymous(c)
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			opt.Logger.Warn(c.Context()).WithFields("user_id", claims.UserID).Logs("Access token carries a malformed user id")
			return anonymous(c)
		}
		if opt.DB != nil {
			if _, err := user.GetUserBy(c.Context(), opt.DB, "id = ?", []interface{}{userID}); err != nil {
				opt.Logger.Warn(c.Context()).WithFields("user_id", claims.UserID).Logs("User not found")
				return anonymous(c)
			}
		}

		c.Locals(localUserID, userID)
		c.Locals(localToken, token)
		c.Locals(localClaims, claims)
		c.SetUserContext(context.WithValue(c.UserContext(), logger.UserIDKey, claims.UserID))
		opt.Logger.Debug(c.Context()).WithFields("user_id", claims.UserID).Logs("User identified")
		return c.Next()
	}
}

func anonymous(c *fiber.Ctx) error {
	c.ClearCookie(cookieName)
	return c.Next()
}
