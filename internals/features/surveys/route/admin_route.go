// file: internals/features/surveys/route/admin_route.go
package router

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	surveyController "surveyku_backend/internals/features/surveys/controller"
)

/*
Route admin survei. Mount di belakang AuthMiddleware:
SurveyAdminRoutes(app.Group("/api/a", auth.AuthMiddleware(db)), db)
*/
func SurveyAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := surveyController.NewSurveyController(db)

	surveys := r.Group("/surveys")
	surveys.Post("/", ctl.CreateSurvey)
	surveys.Get("/", ctl.ListSurveys)
	surveys.Get("/:survey_id", ctl.GetSurveyDetail)
	surveys.Patch("/:survey_id", ctl.UpdateSurveyBasic)
	surveys.Patch("/:survey_id/settings", ctl.UpdateSurveySettings)
	surveys.Delete("/:survey_id", ctl.DeleteSurvey)

	surveys.Post("/:survey_id/publish", ctl.PublishSurvey)
	surveys.Post("/:survey_id/pause", ctl.PauseSurvey)
	surveys.Post("/:survey_id/resume", ctl.ResumeSurvey)
	surveys.Post("/:survey_id/end", ctl.EndSurvey)
	surveys.Post("/:survey_id/copy", ctl.CopySurvey)

	questions := surveys.Group("/:survey_id/questions")
	questions.Get("/", ctl.ListQuestions)
	questions.Post("/", ctl.AddQuestion)
	questions.Put("/order", ctl.ReorderQuestions)
	questions.Patch("/:question_id", ctl.UpdateQuestion)
	questions.Post("/:question_id/copy", ctl.CopyQuestion)
	questions.Delete("/:question_id", ctl.DeleteQuestion)

	responses := surveys.Group("/:survey_id/responses")
	responses.Get("/export", ctl.ExportResponses) // harus sebelum :response_id
	responses.Get("/", ctl.ListResponses)
	responses.Get("/:response_id", ctl.GetResponseDetail)

	surveys.Get("/:survey_id/analytics", ctl.GetAnalytics)

	presetCtl := surveyController.NewPresetOptionController(db)
	presets := r.Group("/preset-options")
	presets.Get("/tree", presetCtl.GetPresetTree) // harus sebelum :group_id
	presets.Get("/", presetCtl.QueryPresetGroups)
	presets.Post("/", presetCtl.CreatePresetGroup)
	presets.Get("/:group_id", presetCtl.GetPresetGroupDetail)
	presets.Put("/:group_id", presetCtl.UpdatePresetGroup)
	presets.Delete("/:group_id", presetCtl.DeletePresetGroup)
}
