// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	fillRoute "surveyku_backend/internals/features/fill/route"
	surveyRoute "surveyku_backend/internals/features/surveys/route"
	authMiddleware "surveyku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// PUBLIC → JWT opsional, survei anonim bisa diisi tanpa token
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/public", authMiddleware.OptionalAuthMiddleware(db))
	fillRoute.FillRoutes(public, db)

	// ADMIN → JWT wajib
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a", authMiddleware.AuthMiddleware(db))
	surveyRoute.SurveyAdminRoutes(admin, db)
}
