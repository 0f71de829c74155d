// file: internals/features/surveys/dto/question_dto.go
package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "surveyku_backend/internals/features/surveys/model"
)

type UpsertQuestionRequest struct {
	Type     model.QuestionType `json:"type" validate:"required,oneof=SINGLE_CHOICE MULTIPLE_CHOICE SHORT_TEXT LONG_TEXT SCALE"`
	Title    string             `json:"title" validate:"max=500"`
	Desc     *string            `json:"desc" validate:"omitempty,max=2000"`
	Required bool               `json:"required"`
	Config   datatypes.JSON     `json:"config"`
}

type ReorderQuestionsRequest struct {
	QuestionIDs []uuid.UUID `json:"question_ids" validate:"required,min=1"`
}

type QuestionVO struct {
	QuestionID uuid.UUID          `json:"question_id"`
	Type       model.QuestionType `json:"type"`
	Title      string             `json:"title"`
	Desc       *string            `json:"desc,omitempty"`
	Required   bool               `json:"required"`
	SortOrder  int                `json:"sort_order"`
	Config     datatypes.JSON     `json:"config,omitempty"`
}

func NewQuestionVO(q *model.SurveyQuestionModel) QuestionVO {
	return QuestionVO{
		QuestionID: q.SurveyQuestionID,
		Type:       q.SurveyQuestionType,
		Title:      q.SurveyQuestionTitle,
		Desc:       q.SurveyQuestionDesc,
		Required:   q.SurveyQuestionRequired,
		SortOrder:  q.SurveyQuestionSortOrder,
		Config:     q.SurveyQuestionConfig,
	}
}

func NewQuestionVOs(questions []model.SurveyQuestionModel) []QuestionVO {
	out := make([]QuestionVO, 0, len(questions))
	for i := range questions {
		out = append(out, NewQuestionVO(&questions[i]))
	}
	return out
}
