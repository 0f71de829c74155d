package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoleModel struct {
	RoleID          uuid.UUID `gorm:"column:role_id;type:uuid;primaryKey" json:"role_id"`
	RoleName        string    `gorm:"column:role_name;type:varchar(100);not null" json:"role_name"`
	RoleDescription *string   `gorm:"column:role_description;type:text" json:"role_description,omitempty"`

	RoleCreatedAt time.Time `gorm:"column:role_created_at;autoCreateTime" json:"role_created_at"`
	RoleUpdatedAt time.Time `gorm:"column:role_updated_at;autoUpdateTime" json:"role_updated_at"`
}

func (RoleModel) TableName() string { return "roles" }

func (m *RoleModel) BeforeCreate(tx *gorm.DB) error {
	if m.RoleID == uuid.Nil {
		m.RoleID = uuid.New()
	}
	return nil
}

// RolePermissionModel: join role ↔ permission.
type RolePermissionModel struct {
	RolePermissionID           uuid.UUID `gorm:"column:role_permission_id;type:uuid;primaryKey" json:"role_permission_id"`
	RolePermissionRoleID       uuid.UUID `gorm:"column:role_permission_role_id;type:uuid;not null;index" json:"role_permission_role_id"`
	RolePermissionPermissionID uuid.UUID `gorm:"column:role_permission_permission_id;type:uuid;not null;index" json:"role_permission_permission_id"`

	RolePermissionCreatedAt time.Time `gorm:"column:role_permission_created_at;autoCreateTime" json:"role_permission_created_at"`
}

func (RolePermissionModel) TableName() string { return "role_permissions" }

func (m *RolePermissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.RolePermissionID == uuid.Nil {
		m.RolePermissionID = uuid.New()
	}
	return nil
}

// UserRoleModel: join user ↔ role.
type UserRoleModel struct {
	UserRoleID     uuid.UUID `gorm:"column:user_role_id;type:uuid;primaryKey" json:"user_role_id"`
	UserRoleUserID uuid.UUID `gorm:"column:user_role_user_id;type:uuid;not null;index" json:"user_role_user_id"`
	UserRoleRoleID uuid.UUID `gorm:"column:user_role_role_id;type:uuid;not null;index" json:"user_role_role_id"`

	UserRoleCreatedAt time.Time `gorm:"column:user_role_created_at;autoCreateTime" json:"user_role_created_at"`
}

func (UserRoleModel) TableName() string { return "user_roles" }

func (m *UserRoleModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserRoleID == uuid.Nil {
		m.UserRoleID = uuid.New()
	}
	return nil
}
