package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"surveyku_backend/internals/middlewares/logger"
)

// SetupMiddlewares pasang middleware dasar (urutan penting:
// recovery paling luar, lalu cors, logger, limiter global).
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
