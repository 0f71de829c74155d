// file: internals/features/surveys/controller/response_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	helper "surveyku_backend/internals/helpers"
)

func parseResponseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("response_id"))
	if err != nil {
		return uuid.Nil, helper.ErrParamError
	}
	return id, nil
}

// ListResponses
// GET /api/a/surveys/:survey_id/responses?page=&per_page=
func (ctl *SurveyController) ListResponses(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	surveyID, err := parseSurveyID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)
	items, total, err := ctl.Service.ListResponses(c.Context(), surveyID, userID, paging.Page, paging.PerPage)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonList(c, "Berhasil mengambil daftar jawaban", items,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GetResponseDetail
// GET /api/a/surveys/:survey_id/responses/:response_id
func (ctl *SurveyController) GetResponseDetail(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	surveyID, err := parseSurveyID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	responseID, err := parseResponseID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	vo, err := ctl.Service.GetResponseDetail(c.Context(), surveyID, responseID, userID)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonOK(c, "Berhasil mengambil detail jawaban", vo)
}

// GetAnalytics
// GET /api/a/surveys/:survey_id/analytics
func (ctl *SurveyController) GetAnalytics(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	surveyID, err := parseSurveyID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	vo, err := ctl.Service.GetAnalytics(c.Context(), surveyID, userID)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonOK(c, "Berhasil mengambil analitik", vo)
}

// ExportResponses
// GET /api/a/surveys/:survey_id/responses/export
func (ctl *SurveyController) ExportResponses(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	surveyID, err := parseSurveyID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	buf, filename, err := ctl.Service.ExportResponses(c.Context(), surveyID, userID)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
