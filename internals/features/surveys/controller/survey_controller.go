// file: internals/features/surveys/controller/survey_controller.go
package controller

import (
	"context"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "surveyku_backend/internals/features/surveys/dto"
	service "surveyku_backend/internals/features/surveys/service"
	helper "surveyku_backend/internals/helpers"
)

type SurveyController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Service   *service.SurveyService
}

func NewSurveyController(db *gorm.DB) *SurveyController {
	return &SurveyController{
		DB:        db,
		Validator: validator.New(),
		Service:   service.NewSurveyService(db),
	}
}

func parseSurveyID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("survey_id"))
	if err != nil {
		return uuid.Nil, helper.ErrParamError
	}
	return id, nil
}

func (ctl *SurveyController) callerID(c *fiber.Ctx) (uuid.UUID, error) {
	return helper.GetUserIDFromToken(c)
}

/* =========================================================
   CRUD
========================================================= */

// CreateSurvey
// POST /api/a/surveys
func (ctl *SurveyController) CreateSurvey(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	var req dto.CreateSurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonBusinessError(c, helper.ErrParamError)
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonBusinessError(c, helper.ErrParamError)
	}
	survey, err := ctl.Service.Create(c.Context(), userID, &req)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	log.Printf("[SURVEY] created survey=%s creator=%s", survey.SurveyID, userID)
	return helper.JsonCreated(c, "Survei dibuat", survey)
}

// ListSurveys
// GET /api/a/surveys?only_mine=&status=&keyword=&sort=&page=&per_page=
func (ctl *SurveyController) ListSurveys(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)
	q := &dto.ListSurveysQuery{
		OnlyMine: c.QueryBool("only_mine"),
		Status:   strings.TrimSpace(c.Query("status")),
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		SortBy:   strings.TrimSpace(c.Query("sort", "updated_at")),
		Page:     paging.Page,
		PerPage:  paging.PerPage,
	}
	items, total, err := ctl.Service.List(c.Context(), userID, q)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonList(c, "Berhasil mengambil daftar survei", items,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GetSurveyDetail
// GET /api/a/surveys/:survey_id
func (ctl *SurveyController) GetSurveyDetail(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	surveyID, err := parseSurveyID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	vo, err := ctl.Service.GetDetail(c.Context(), surveyID, userID)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonOK(c, "Berhasil mengambil detail survei", vo)
}

// UpdateSurveyBasic
// PATCH /api/a/surveys/:survey_id
func (ctl *SurveyController) UpdateSurveyBasic(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	surveyID, err := parseSurveyID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	var req dto.UpdateSurveyBasicRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonBusinessError(c, helper.ErrParamError)
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonBusinessError(c, helper.ErrParamError)
	}
	if err := ctl.Service.UpdateBasic(c.Context(), surveyID, userID, &req); err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonUpdated(c, "Survei diperbarui", nil)
}

// UpdateSurveySettings
// PATCH /api/a/surveys/:survey_id/settings
func (ctl *SurveyController) UpdateSurveySettings(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	surveyID, err := parseSurveyID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	var req dto.UpdateSurveySettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonBusinessError(c, helper.ErrParamError)
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonBusinessError(c, helper.ErrParamError)
	}
	if err := ctl.Service.UpdateSettings(c.Context(), surveyID, userID, &req); err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonUpdated(c, "Pengaturan survei diperbarui", nil)
}

/* =========================================================
   Siklus hidup
========================================================= */

// PublishSurvey POST /api/a/surveys/:survey_id/publish
func (ctl *SurveyController) PublishSurvey(c *fiber.Ctx) error {
	return ctl.lifecycle(c, ctl.Service.Publish, "Survei dipublikasikan")
}

// PauseSurvey POST /api/a/surveys/:survey_id/pause
func (ctl *SurveyController) PauseSurvey(c *fiber.Ctx) error {
	return ctl.lifecycle(c, ctl.Service.Pause, "Survei dijeda")
}

// ResumeSurvey POST /api/a/surveys/:survey_id/resume
func (ctl *SurveyController) ResumeSurvey(c *fiber.Ctx) error {
	return ctl.lifecycle(c, ctl.Service.Resume, "Survei dilanjutkan")
}

// EndSurvey POST /api/a/surveys/:survey_id/end
func (ctl *SurveyController) EndSurvey(c *fiber.Ctx) error {
	return ctl.lifecycle(c, ctl.Service.End, "Survei diakhiri")
}

func (ctl *SurveyController) lifecycle(c *fiber.Ctx, op func(ctx context.Context, surveyID, userID uuid.UUID) error, message string) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	surveyID, err := parseSurveyID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	if err := op(c.Context(), surveyID, userID); err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonUpdated(c, message, nil)
}

/* =========================================================
   Copy / Delete
========================================================= */

// CopySurvey POST /api/a/surveys/:survey_id/copy
func (ctl *SurveyController) CopySurvey(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	surveyID, err := parseSurveyID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	dup, err := ctl.Service.Copy(c.Context(), surveyID, userID)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonCreated(c, "Survei disalin", dup)
}

// DeleteSurvey DELETE /api/a/surveys/:survey_id
func (ctl *SurveyController) DeleteSurvey(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	surveyID, err := parseSurveyID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	if err := ctl.Service.Delete(c.Context(), surveyID, userID); err != nil {
		return helper.JsonBusinessError(c, err)
	}
	log.Printf("[SURVEY] deleted survey=%s by=%s", surveyID, userID)
	return helper.JsonDeleted(c, "Survei dihapus", nil)
}
