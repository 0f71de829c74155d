// file: internals/features/surveys/dto/survey_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "surveyku_backend/internals/features/surveys/model"
)

/* =========================================================
   Request
========================================================= */

type CreateSurveyRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type UpdateSurveyBasicRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type UpdateSurveySettingsRequest struct {
	LimitOncePerUser *bool      `json:"limit_once_per_user"`
	AllowAnonymous   *bool      `json:"allow_anonymous"`
	LimitByIP        *int       `json:"limit_by_ip" validate:"omitempty,gte=0"`
	LimitByDevice    *int       `json:"limit_by_device" validate:"omitempty,gte=0"`
	StartTime        *time.Time `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
	ThankYouText     *string    `json:"thank_you_text" validate:"omitempty,max=2000"`
}

// ListSurveysQuery diambil dari query string oleh controller.
type ListSurveysQuery struct {
	OnlyMine bool
	Status   string
	Keyword  string
	SortBy   string // created_at | updated_at
	SortDesc bool
	Page     int
	PerPage  int
}

/* =========================================================
   Response
========================================================= */

type SurveyListItemVO struct {
	SurveyID      uuid.UUID          `json:"survey_id"`
	Title         string             `json:"title"`
	Status        model.SurveyStatus `json:"status"`
	CreatorID     uuid.UUID          `json:"creator_id"`
	DepartmentID  *uuid.UUID         `json:"department_id,omitempty"`
	StartTime     *time.Time         `json:"start_time,omitempty"`
	EndTime       *time.Time         `json:"end_time,omitempty"`
	ResponseCount int64              `json:"response_count"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type SurveyDetailVO struct {
	SurveyID         uuid.UUID          `json:"survey_id"`
	Title            string             `json:"title"`
	Description      *string            `json:"description,omitempty"`
	Status           model.SurveyStatus `json:"status"`
	CreatorID        uuid.UUID          `json:"creator_id"`
	DepartmentID     *uuid.UUID         `json:"department_id,omitempty"`
	LimitOncePerUser bool               `json:"limit_once_per_user"`
	AllowAnonymous   bool               `json:"allow_anonymous"`
	LimitByIP        int                `json:"limit_by_ip"`
	LimitByDevice    int                `json:"limit_by_device"`
	StartTime        *time.Time         `json:"start_time,omitempty"`
	EndTime          *time.Time         `json:"end_time,omitempty"`
	ThankYouText     *string            `json:"thank_you_text,omitempty"`
	Questions        []QuestionVO       `json:"questions"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

func NewSurveyDetailVO(s *model.SurveyModel, questions []model.SurveyQuestionModel) *SurveyDetailVO {
	return &SurveyDetailVO{
		SurveyID:         s.SurveyID,
		Title:            s.SurveyTitle,
		Description:      s.SurveyDescription,
		Status:           s.SurveyStatus,
		CreatorID:        s.SurveyCreatorID,
		DepartmentID:     s.SurveyDepartmentID,
		LimitOncePerUser: s.SurveyLimitOncePerUser,
		AllowAnonymous:   s.SurveyAllowAnonymous,
		LimitByIP:        s.SurveyLimitByIP,
		LimitByDevice:    s.SurveyLimitByDevice,
		StartTime:        s.SurveyStartTime,
		EndTime:          s.SurveyEndTime,
		ThankYouText:     s.SurveyThankYouText,
		Questions:        NewQuestionVOs(questions),
		CreatedAt:        s.SurveyCreatedAt,
		UpdatedAt:        s.SurveyUpdatedAt,
	}
}
