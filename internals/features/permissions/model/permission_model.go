package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DataScope menentukan lebar akses sebuah permission saat dievaluasi
// terhadap entitas konkret.
type DataScope string

const (
	ScopeSchool     DataScope = "SCHOOL"
	ScopeDepartment DataScope = "DEPARTMENT"
	ScopeSelf       DataScope = "SELF"
)

const (
	ResourceSurvey   = "survey"
	ResourceResponse = "response"
)

const (
	ActionView    = "view"
	ActionEdit    = "edit"
	ActionCreate  = "create"
	ActionPublish = "publish"
	ActionDelete  = "delete"
	ActionExport  = "export"
)

type PermissionModel struct {
	PermissionID           uuid.UUID `gorm:"column:permission_id;type:uuid;primaryKey" json:"permission_id"`
	PermissionName         string    `gorm:"column:permission_name;type:varchar(100);not null" json:"permission_name"`
	PermissionResourceType string    `gorm:"column:permission_resource_type;type:varchar(32);not null;index:idx_permission_pair" json:"permission_resource_type"`
	PermissionAction       string    `gorm:"column:permission_action;type:varchar(32);not null;index:idx_permission_pair" json:"permission_action"`
	PermissionDataScope    DataScope `gorm:"column:permission_data_scope;type:varchar(16);not null" json:"permission_data_scope"`
	PermissionDescription  *string   `gorm:"column:permission_description;type:text" json:"permission_description,omitempty"`

	PermissionCreatedAt time.Time `gorm:"column:permission_created_at;autoCreateTime" json:"permission_created_at"`
	PermissionUpdatedAt time.Time `gorm:"column:permission_updated_at;autoUpdateTime" json:"permission_updated_at"`
}

func (PermissionModel) TableName() string { return "permissions" }

func (m *PermissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.PermissionID == uuid.Nil {
		m.PermissionID = uuid.New()
	}
	return nil
}
