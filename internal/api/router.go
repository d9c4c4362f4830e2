package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	v1 "github.com/mnuddindev/routinely/internal/api/v1"
	"github.com/mnuddindev/routinely/internal/config"
	"github.com/mnuddindev/routinely/pkg/logger"
	"github.com/mnuddindev/routinely/pkg/utils"
)

// NewApp builds the fiber app with the shared middleware stack.
func NewApp(cfg *config.Config, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "routinely",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: utils.HandleError,
	})

	app.Use(
		logger.SetupLogger(log),
		recover.New(),
		cors.New(
			cors.Config{
				AllowOrigins:     cfg.CORSOrigins,
				AllowCredentials: true,
				AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
			},
		),
		compress.New(
			compress.Config{
				Level: compress.LevelBestSpeed,
			},
		),
	)
	if cfg.RateLimit > 0 {
		app.Use(limiter.New(
			limiter.Config{
				Expiration: 1 * time.Minute,
				Max:        cfg.RateLimit,
				KeyGenerator: func(c *fiber.Ctx) string {
					return c.IP()
				},
				LimitReached: func(c *fiber.Ctx) error {
					return utils.SendError(c, utils.NewError(fiber.StatusTooManyRequests, "Too many requests. Try again later."))
				},
			},
		))
	}
	app.Use(log.AccessLog(), log.Middleware())
	return app
}

// NewRoutes mounts the API under /api.
func NewRoutes(app *fiber.App, h *v1.Handler) {
	api := app.Group("/api")
	v1.Routes(api, h)
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
}
