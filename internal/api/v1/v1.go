package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mnuddindev/routinely/internal/auth"
	"github.com/mnuddindev/routinely/internal/models"
	"github.com/mnuddindev/routinely/pkg/logger"
	"github.com/mnuddindev/routinely/pkg/utils"
	"gorm.io/gorm"
)

// Handler carries the dependencies shared by every v1 endpoint.
type Handler struct {
	DB       *gorm.DB
	Cache    models.Cache
	Revoker  auth.Revoker
	Tokens   *auth.TokenManager
	Logger   *logger.Logger
	EmailCfg utils.EmailConfig
	Mailer   utils.Sender
}

// pathID parses a uuid path parameter. Malformed ids cannot name a stored
// row, so they are reported as not found.
func pathID(c *fiber.Ctx, name, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, utils.NewError(utils.ErrNotFound.Code, what+" not found")
	}
	return id, nil
}

// parseBody decodes the JSON body, rejecting unknown fields.
func (h *Handler) parseBody(c *fiber.Ctx, out interface{}) error {
	if err := utils.StrictBodyParser(c, out); err != nil {
		h.Logger.Warn(c.UserContext()).WithFields("error", err).Logs("Failed to parse request body")
		return utils.NewError(utils.ErrBadRequest.Code, "Invalid request format", err.Error())
	}
	return nil
}
