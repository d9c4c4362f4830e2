package v1

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mnuddindev/routinely/internal/auth"
	"github.com/mnuddindev/routinely/internal/models"
	"github.com/mnuddindev/routinely/internal/pagination"
	"github.com/mnuddindev/routinely/pkg/utils"
)

// Register creates an account and signs the new user in.
func (h *Handler) Register(c *fiber.Ctx) error {
	var in models.RegisterInput
	if err := h.parseBody(c, &in); err != nil {
		return utils.SendError(c, err)
	}

	user, err := models.Register(c.UserContext(), h.DB, in)
	if err != nil {
		h.Logger.Warn(c.UserContext()).WithFields("username", in.Username, "status", utils.CodeOf(err), "error", err).Logs("Registration failed")
		return utils.SendError(c, err)
	}

	if h.EmailCfg.Enabled() {
		if err := utils.SendWelcomeEmail(c.UserContext(), h.EmailCfg, h.Mailer, user.Email, user.FirstName, h.Logger); err != nil {
			h.Logger.Warn(c.UserContext()).WithFields("user_id", user.ID).Logs("Welcome email failed but user created")
		}
	}

	token, err := h.issueToken(c, user)
	if err != nil {
		return utils.SendError(c, err)
	}

	h.Logger.Info(c.UserContext()).WithFields("user_id", user.ID, "username", user.Username).Logs("User registered successfully")
	return utils.Success(c).
		WithStatus(fiber.StatusCreated).
		WithMessage("Registration successful").
		WithData(fiber.Map{"user": user.Account(), "access_token": token}).
		Send()
}

// Login checks a username and password pair and returns an access token.
func (h *Handler) Login(c *fiber.Ctx) error {
	type LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	var lr LoginRequest
	if err := h.parseBody(c, &lr); err != nil {
		return utils.SendError(c, err)
	}

	user, err := models.Authenticate(c.UserContext(), h.DB, strings.TrimSpace(lr.Username), lr.Password)
	if err != nil {
		h.Logger.Warn(c.UserContext()).WithFields("username", lr.Username).Logs("Invalid login attempt")
		return utils.SendError(c, err)
	}

	token, err := h.issueToken(c, user)
	if err != nil {
		return utils.SendError(c, err)
	}

	h.Logger.Info(c.UserContext()).WithFields("user_id", user.ID).Logs("User logged in successfully")
	return utils.Success(c).
		WithMessage("Login successful").
		WithData(fiber.Map{"user": user.Account(), "access_token": token}).
		Send()
}

func (h *Handler) issueToken(c *fiber.Ctx, user *models.User) (string, error) {
	token, claims, err := h.Tokens.Generate(user.ID)
	if err != nil {
		h.Logger.Error(c.UserContext()).WithFields("user_id", user.ID, "error", err).Logs("Failed to generate access token")
		return "", utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to process login")
	}
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  claims.ExpiresAt.Time,
		HTTPOnly: true,
		SameSite: "Strict",
	})
	return token, nil
}

// Logout revokes the caller's token until it would have expired anyway.
func (h *Handler) Logout(c *fiber.Ctx) error {
	token, claims := auth.Token(c)
	if token != "" && claims != nil && h.Revoker != nil {
		if err := h.Revoker.Revoke(c.UserContext(), token, claims.Remaining()); err != nil {
			h.Logger.Error(c.UserContext()).WithFields("error", err).Logs("Failed to revoke access token")
			return utils.SendError(c, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to log out"))
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Strict",
	})

	h.Logger.Info(c.UserContext()).WithFields("user_id", auth.UserID(c)).Logs("User logged out")
	return utils.Success(c).WithMessage("Logged out").Send()
}

// ListUsers is the user directory, ordered by username.
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	offset := pagination.ParseOffset(c.Query("start"))
	users, err := models.ListUsers(c.UserContext(), h.DB, offset, pagination.PageSize)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"users": users})
}

// UserJournal shows another user's journal, read only.
func (h *Handler) UserJournal(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "User")
	if err != nil {
		return utils.SendError(c, err)
	}
	user, err := models.GetUserBy(c.UserContext(), h.DB, "id = ?", []interface{}{id})
	if err != nil {
		return utils.SendError(c, err)
	}
	journal, err := models.ListJournal(c.UserContext(), h.DB, user.ID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"user": user, "journal": journal})
}
