// file: internals/features/surveys/controller/question_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	dto "surveyku_backend/internals/features/surveys/dto"
	helper "surveyku_backend/internals/helpers"
)

func parseQuestionID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("question_id"))
	if err != nil {
		return uuid.Nil, helper.ErrParamError
	}
	return id, nil
}

// ListQuestions
// GET /api/a/surveys/:survey_id/questions
func (ctl *SurveyController) ListQuestions(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	surveyID, err := parseSurveyID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	questions, err := ctl.Service.ListQuestions(c.Context(), surveyID, userID)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonOK(c, "Berhasil mengambil pertanyaan", questions)
}

// AddQuestion
// POST /api/a/surveys/:survey_id/questions
func (ctl *SurveyController) AddQuestion(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	surveyID, err := parseSurveyID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	var req dto.UpsertQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonBusinessError(c, helper.ErrParamError)
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonBusinessError(c, helper.ErrParamError)
	}
	vo, err := ctl.Service.AddQuestion(c.Context(), surveyID, userID, &req)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonCreated(c, "Pertanyaan ditambahkan", vo)
}

// UpdateQuestion
// PATCH /api/a/surveys/:survey_id/questions/:question_id
func (ctl *SurveyController) UpdateQuestion(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	surveyID, err := parseSurveyID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	questionID, err := parseQuestionID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	var req dto.UpsertQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonBusinessError(c, helper.ErrParamError)
	}
	if err := ctl.Service.UpdateQuestion(c.Context(), surveyID, questionID, userID, &req); err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonUpdated(c, "Pertanyaan diperbarui", nil)
}

// ReorderQuestions
// PUT /api/a/surveys/:survey_id/questions/order
func (ctl *SurveyController) ReorderQuestions(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	surveyID, err := parseSurveyID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	var req dto.ReorderQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonBusinessError(c, helper.ErrParamError)
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonBusinessError(c, helper.ErrParamError)
	}
	if err := ctl.Service.ReorderQuestions(c.Context(), surveyID, userID, req.QuestionIDs); err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonUpdated(c, "Urutan pertanyaan diperbarui", nil)
}

// CopyQuestion
// POST /api/a/surveys/:survey_id/questions/:question_id/copy
func (ctl *SurveyController) CopyQuestion(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	surveyID, err := parseSurveyID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	questionID, err := parseQuestionID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	vo, err := ctl.Service.CopyQuestion(c.Context(), surveyID, questionID, userID)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonCreated(c, "Pertanyaan disalin", vo)
}

// DeleteQuestion
// DELETE /api/a/surveys/:survey_id/questions/:question_id
func (ctl *SurveyController) DeleteQuestion(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	surveyID, err := parseSurveyID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	questionID, err := parseQuestionID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	if err := ctl.Service.DeleteQuestion(c.Context(), surveyID, questionID, userID); err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonDeleted(c, "Pertanyaan dihapus", nil)
}
