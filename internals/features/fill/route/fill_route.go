// file: internals/features/fill/route/fill_route.go
package router

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	fillController "surveyku_backend/internals/features/fill/controller"
	"surveyku_backend/internals/middlewares"
)

/*
Route publik pengisian survei.
Mount contoh: FillRoutes(app.Group("/public", auth.OptionalAuthMiddleware(db)), db)
— login opsional: survei anonim bisa diisi tanpa token.
*/
func FillRoutes(r fiber.Router, db *gorm.DB) {
	ctl := fillController.NewFillController(db)

	surveys := r.Group("/fill/surveys")
	surveys.Get("/:survey_id", ctl.GetFillSurvey)                                        // GET /public/fill/surveys/:survey_id?preview=1
	surveys.Get("/:survey_id/draft", ctl.GetDraft)                                       // GET /public/fill/surveys/:survey_id/draft
	surveys.Put("/:survey_id/draft", ctl.SaveDraft)                                      // PUT /public/fill/surveys/:survey_id/draft
	surveys.Post("/:survey_id/submit", middlewares.SubmitRateLimiter(), ctl.Submit)      // POST /public/fill/surveys/:survey_id/submit
}
