package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResponseStatus string

const (
	ResponseStatusDraft     ResponseStatus = "DRAFT"
	ResponseStatusSubmitted ResponseStatus = "SUBMITTED"
)

// ResponseModel: satu jawaban (draft atau submitted) per dimensi identitas.
// Dimensi = user_id untuk survei login, device_id untuk survei anonim.
type ResponseModel struct {
	ResponseID       uuid.UUID      `gorm:"column:response_id;type:uuid;primaryKey" json:"response_id"`
	ResponseSurveyID uuid.UUID      `gorm:"column:response_survey_id;type:uuid;not null;index" json:"response_survey_id"`
	ResponseUserID   *uuid.UUID     `gorm:"column:response_user_id;type:uuid;index" json:"response_user_id,omitempty"`
	ResponseDeviceID *string        `gorm:"column:response_device_id;type:varchar(120);index" json:"response_device_id,omitempty"`
	ResponseStatus   ResponseStatus `gorm:"column:response_status;type:varchar(16);not null;index" json:"response_status"`

	ResponseSubmittedAt     *time.Time `gorm:"column:response_submitted_at" json:"response_submitted_at,omitempty"`
	ResponseDurationSeconds *int       `gorm:"column:response_duration_seconds" json:"response_duration_seconds,omitempty"`
	ResponseSubmittedIP     *string    `gorm:"column:response_submitted_ip;type:varchar(64);index" json:"response_submitted_ip,omitempty"`

	ResponseCreatedAt time.Time `gorm:"column:response_created_at;autoCreateTime" json:"response_created_at"`
	ResponseUpdatedAt time.Time `gorm:"column:response_updated_at;autoUpdateTime" json:"response_updated_at"`
}

func (ResponseModel) TableName() string { return "responses" }

func (m *ResponseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ResponseID == uuid.Nil {
		m.ResponseID = uuid.New()
	}
	return nil
}
