package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionTypeSingleChoice   QuestionType = "SINGLE_CHOICE"
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeShortText      QuestionType = "SHORT_TEXT"
	QuestionTypeLongText       QuestionType = "LONG_TEXT"
	QuestionTypeScale          QuestionType = "SCALE"
)

type SurveyQuestionModel struct {
	SurveyQuestionID       uuid.UUID    `gorm:"column:survey_question_id;type:uuid;primaryKey" json:"survey_question_id"`
	SurveyQuestionSurveyID uuid.UUID    `gorm:"column:survey_question_survey_id;type:uuid;not null;index" json:"survey_question_survey_id"`
	SurveyQuestionType     QuestionType `gorm:"column:survey_question_type;type:varchar(20);not null" json:"survey_question_type"`
	SurveyQuestionTitle    string       `gorm:"column:survey_question_title;type:text" json:"survey_question_title"`
	SurveyQuestionDesc     *string      `gorm:"column:survey_question_desc;type:text" json:"survey_question_desc,omitempty"`
	SurveyQuestionRequired bool         `gorm:"column:survey_question_required;not null;default:false" json:"survey_question_required"`

	// Urutan tampil, rapat (0..n-1) per survei. Wajib dijaga tetap kontigu
	// setelah delete/copy/reorder.
	SurveyQuestionSortOrder int `gorm:"column:survey_question_sort_order;not null;default:0;index" json:"survey_question_sort_order"`

	// Konfigurasi per tipe (options, minChoices, scaleMin, dst). Bentuknya
	// diketik ulang di package schema, jangan parse manual di tempat lain.
	SurveyQuestionConfig datatypes.JSON `gorm:"column:survey_question_config;type:jsonb" json:"survey_question_config,omitempty"`

	SurveyQuestionCreatedAt time.Time `gorm:"column:survey_question_created_at;autoCreateTime" json:"survey_question_created_at"`
	SurveyQuestionUpdatedAt time.Time `gorm:"column:survey_question_updated_at;autoUpdateTime" json:"survey_question_updated_at"`
}

func (SurveyQuestionModel) TableName() string { return "survey_questions" }

func (m *SurveyQuestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SurveyQuestionID == uuid.Nil {
		m.SurveyQuestionID = uuid.New()
	}
	return nil
}

func (m *SurveyQuestionModel) IsChoice() bool {
	return m.SurveyQuestionType == QuestionTypeSingleChoice || m.SurveyQuestionType == QuestionTypeMultipleChoice
}
