// file: internals/features/fill/dto/fill_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	responseModel "surveyku_backend/internals/features/responses/model"
	surveyModel "surveyku_backend/internals/features/surveys/model"
)

/* =========================================================
   Payload pengisian
========================================================= */

// SubmitItemDTO: satu jawaban per pertanyaan. Field yang dipakai tergantung
// tipe pertanyaannya; text_value boleh menemani option_index untuk isian
// "Lainnya".
type SubmitItemDTO struct {
	QuestionID    uuid.UUID `json:"question_id" validate:"required"`
	OptionIndex   *int      `json:"option_index,omitempty"`   // single choice
	OptionIndices []int     `json:"option_indices,omitempty"` // multiple choice
	TextValue     *string   `json:"text_value,omitempty"`     // isian / "Lainnya"
	ScaleValue    *int      `json:"scale_value,omitempty"`    // skala
}

type SubmitRequestDTO struct {
	Items           []SubmitItemDTO `json:"items"`
	DurationSeconds *int            `json:"duration_seconds" validate:"omitempty,gte=0"`
	DeviceID        *string         `json:"device_id" validate:"omitempty,max=120"`
}

/* =========================================================
   Metadata halaman pengisian
========================================================= */

type FillQuestionVO struct {
	QuestionID uuid.UUID               `json:"question_id"`
	Type       surveyModel.QuestionType `json:"type"`
	Title      string                  `json:"title"`
	Desc       *string                 `json:"desc,omitempty"`
	Required   bool                    `json:"required"`
	SortOrder  int                     `json:"sort_order"`
	Config     datatypes.JSON          `json:"config,omitempty"`
}

type FillSurveyVO struct {
	SurveyID         uuid.UUID                `json:"survey_id"`
	Title            string                   `json:"title"`
	Description      *string                  `json:"description,omitempty"`
	Status           surveyModel.SurveyStatus `json:"status"`
	AllowAnonymous   bool                     `json:"allow_anonymous"`
	LimitOncePerUser bool                     `json:"limit_once_per_user"`
	StartTime        *time.Time               `json:"start_time,omitempty"`
	EndTime          *time.Time               `json:"end_time,omitempty"`
	ThankYouText     *string                  `json:"thank_you_text,omitempty"`
	Questions        []FillQuestionVO         `json:"questions"`
}

func NewFillSurveyVO(s *surveyModel.SurveyModel, questions []surveyModel.SurveyQuestionModel) *FillSurveyVO {
	vo := &FillSurveyVO{
		SurveyID:         s.SurveyID,
		Title:            s.SurveyTitle,
		Description:      s.SurveyDescription,
		Status:           s.SurveyStatus,
		AllowAnonymous:   s.SurveyAllowAnonymous,
		LimitOncePerUser: s.SurveyLimitOncePerUser,
		StartTime:        s.SurveyStartTime,
		EndTime:          s.SurveyEndTime,
		ThankYouText:     s.SurveyThankYouText,
		Questions:        make([]FillQuestionVO, 0, len(questions)),
	}
	for _, q := range questions {
		vo.Questions = append(vo.Questions, FillQuestionVO{
			QuestionID: q.SurveyQuestionID,
			Type:       q.SurveyQuestionType,
			Title:      q.SurveyQuestionTitle,
			Desc:       q.SurveyQuestionDesc,
			Required:   q.SurveyQuestionRequired,
			SortOrder:  q.SurveyQuestionSortOrder,
			Config:     q.SurveyQuestionConfig,
		})
	}
	return vo
}

/* =========================================================
   Draft & hasil submit
========================================================= */

// DraftItemVO: bentuk item draft yang bisa langsung dipakai ulang
// sebagai SubmitItemDTO oleh klien.
type DraftItemVO struct {
	QuestionID    uuid.UUID `json:"question_id"`
	OptionIndex   *int      `json:"option_index,omitempty"`
	OptionIndices []int     `json:"option_indices,omitempty"`
	TextValue     *string   `json:"text_value,omitempty"`
	ScaleValue    *int      `json:"scale_value,omitempty"`
}

type DraftVO struct {
	ResponseID uuid.UUID     `json:"response_id"`
	SavedAt    time.Time     `json:"saved_at"`
	Items      []DraftItemVO `json:"items"`
}

func NewDraftVO(r *responseModel.ResponseModel, items []responseModel.ResponseItemModel) *DraftVO {
	vo := &DraftVO{
		ResponseID: r.ResponseID,
		SavedAt:    r.ResponseUpdatedAt,
		Items:      make([]DraftItemVO, 0, len(items)),
	}
	for i := range items {
		it := &items[i]
		vo.Items = append(vo.Items, DraftItemVO{
			QuestionID:    it.ResponseItemQuestionID,
			OptionIndex:   it.ResponseItemOptionIndex,
			OptionIndices: it.OptionIndices(),
			TextValue:     it.ResponseItemTextValue,
			ScaleValue:    it.ResponseItemScaleValue,
		})
	}
	return vo
}

type SubmitResultVO struct {
	ResponseID   uuid.UUID `json:"response_id"`
	SubmittedAt  time.Time `json:"submitted_at"`
	ThankYouText *string   `json:"thank_you_text,omitempty"`
}
