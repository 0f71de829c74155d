package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel hanya dipakai untuk lookup identitas & departemen.
// Provisioning akun (password, SSO) ada di sistem lain.
type UserModel struct {
	UserID           uuid.UUID  `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	UserName         string     `gorm:"column:user_name;type:varchar(100);not null" json:"user_name"`
	UserDisplayName  *string    `gorm:"column:user_display_name;type:varchar(100)" json:"user_display_name,omitempty"`
	UserDepartmentID *uuid.UUID `gorm:"column:user_department_id;type:uuid;index" json:"user_department_id,omitempty"`
	UserIsActive     bool       `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	UserCreatedAt time.Time `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`

	Department *DepartmentModel `gorm:"foreignKey:UserDepartmentID" json:"department,omitempty"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}
