package bootstrap

import (
	"axiso-backend/internal/config"
	"axiso-backend/internal/interfaces/router"
	"axiso-backend/internal/pkg/logging"

	"github.com/gofiber/fiber/v2"
)

// New creates the Fiber app for the serverless entry point, which cannot
// import internal packages directly.
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.LogLevel, cfg.IsProduction())
	app, _, _, err := router.CreateApp(cfg)
	return app, err
}
