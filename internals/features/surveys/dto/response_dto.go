// file: internals/features/surveys/dto/response_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "surveyku_backend/internals/features/surveys/model"
)

/* =========================================================
   Rekap jawaban untuk admin
========================================================= */

type ResponseListItemVO struct {
	ResponseID      uuid.UUID  `json:"response_id"`
	UserID          *uuid.UUID `json:"user_id,omitempty"`
	DeviceID        *string    `json:"device_id,omitempty"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	DurationSeconds *int       `json:"duration_seconds,omitempty"`
	SubmittedIP     *string    `json:"submitted_ip,omitempty"`
	// Dua jawaban pertama dalam bentuk singkat, untuk kolom ringkasan tabel.
	Summary []string `json:"summary"`
}

type ResponseAnswerVO struct {
	QuestionID uuid.UUID          `json:"question_id"`
	Type       model.QuestionType `json:"type"`
	Title      string             `json:"title"`
	SortOrder  int                `json:"sort_order"`
	// Jawaban yang sudah diformat untuk tampilan; "—" bila tidak dijawab.
	Display string `json:"display"`
}

type ResponseDetailVO struct {
	ResponseID      uuid.UUID          `json:"response_id"`
	UserID          *uuid.UUID         `json:"user_id,omitempty"`
	DeviceID        *string            `json:"device_id,omitempty"`
	SubmittedAt     *time.Time         `json:"submitted_at,omitempty"`
	DurationSeconds *int               `json:"duration_seconds,omitempty"`
	SubmittedIP     *string            `json:"submitted_ip,omitempty"`
	Answers         []ResponseAnswerVO `json:"answers"`
}

/* =========================================================
   Analytics
========================================================= */

type OptionStatVO struct {
	Label string  `json:"label"`
	Count int64   `json:"count"`
	Ratio float64 `json:"ratio"`
}

type ScaleStatVO struct {
	Value int   `json:"value"`
	Count int64 `json:"count"`
}

type QuestionAnalyticsVO struct {
	QuestionID uuid.UUID          `json:"question_id"`
	Type       model.QuestionType `json:"type"`
	Title      string             `json:"title"`
	SortOrder  int                `json:"sort_order"`
	Answered   int64              `json:"answered"`

	Options []OptionStatVO `json:"options,omitempty"` // pilihan
	Average *float64       `json:"average,omitempty"` // skala
	Scale   []ScaleStatVO  `json:"scale,omitempty"`   // distribusi skala
	Texts   []string       `json:"texts,omitempty"`   // isian
}

type SurveyAnalyticsVO struct {
	SurveyID       uuid.UUID             `json:"survey_id"`
	TotalResponses int64                 `json:"total_responses"`
	Questions      []QuestionAnalyticsVO `json:"questions"`
}
