package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SurveyStatus string

const (
	SurveyStatusDraft      SurveyStatus = "DRAFT"
	SurveyStatusCollecting SurveyStatus = "COLLECTING"
	SurveyStatusPaused     SurveyStatus = "PAUSED"
	SurveyStatusEnded      SurveyStatus = "ENDED"
)

type SurveyModel struct {
	SurveyID          uuid.UUID    `gorm:"column:survey_id;type:uuid;primaryKey" json:"survey_id"`
	SurveyTitle       string       `gorm:"column:survey_title;type:varchar(200);not null" json:"survey_title"`
	SurveyDescription *string      `gorm:"column:survey_description;type:text" json:"survey_description,omitempty"`
	SurveyStatus      SurveyStatus `gorm:"column:survey_status;type:varchar(16);not null;default:'DRAFT';index" json:"survey_status"`
	SurveyCreatorID   uuid.UUID    `gorm:"column:survey_creator_id;type:uuid;not null;index" json:"survey_creator_id"`

	// Departemen pemilik diisi saat create dan tidak ikut pindah bila creator
	// pindah departemen. NULL = hanya terlihat oleh creator pada scope DEPARTMENT.
	SurveyDepartmentID *uuid.UUID `gorm:"column:survey_department_id;type:uuid;index" json:"survey_department_id,omitempty"`

	// Tanpa tag default: gorm tidak menulis field bernilai zero yang punya
	// default, sehingga false akan tersimpan sebagai true. Nilai awal diisi
	// service saat create.
	SurveyLimitOncePerUser bool       `gorm:"column:survey_limit_once_per_user;not null" json:"survey_limit_once_per_user"`
	SurveyAllowAnonymous   bool       `gorm:"column:survey_allow_anonymous;not null;default:false" json:"survey_allow_anonymous"`
	SurveyLimitByIP        int        `gorm:"column:survey_limit_by_ip;not null;default:0" json:"survey_limit_by_ip"`
	SurveyLimitByDevice    int        `gorm:"column:survey_limit_by_device;not null;default:0" json:"survey_limit_by_device"`
	SurveyStartTime        *time.Time `gorm:"column:survey_start_time" json:"survey_start_time,omitempty"`
	SurveyEndTime          *time.Time `gorm:"column:survey_end_time" json:"survey_end_time,omitempty"`
	SurveyThankYouText     *string    `gorm:"column:survey_thank_you_text;type:text" json:"survey_thank_you_text,omitempty"`

	SurveyCreatedAt time.Time `gorm:"column:survey_created_at;autoCreateTime" json:"survey_created_at"`
	SurveyUpdatedAt time.Time `gorm:"column:survey_updated_at;autoUpdateTime" json:"survey_updated_at"`
}

func (SurveyModel) TableName() string { return "surveys" }

func (m *SurveyModel) BeforeCreate(tx *gorm.DB) error {
	if m.SurveyID == uuid.Nil {
		m.SurveyID = uuid.New()
	}
	return nil
}

func (m *SurveyModel) IsCollecting() bool { return m.SurveyStatus == SurveyStatusCollecting }
