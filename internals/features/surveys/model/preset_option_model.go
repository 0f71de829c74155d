// file: internals/features/surveys/model/preset_option_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PresetOptionGroupModel: satu tombol pustaka opsi di editor pertanyaan
// pilihan ("Jenis kelamin", "Pendidikan terakhir", ...), dikelompokkan per
// kategori. Dirawat oleh admin sistem, dipakai semua pembuat survei.
type PresetOptionGroupModel struct {
	PresetOptionGroupID       uuid.UUID `gorm:"column:preset_option_group_id;type:uuid;primaryKey" json:"preset_option_group_id"`
	PresetOptionGroupCategory string    `gorm:"column:preset_option_group_category;type:varchar(100);not null;index" json:"preset_option_group_category"`
	PresetOptionGroupName     string    `gorm:"column:preset_option_group_name;type:varchar(100);not null" json:"preset_option_group_name"`
	PresetOptionGroupSort     int       `gorm:"column:preset_option_group_sort;not null" json:"preset_option_group_sort"`
	PresetOptionGroupEnabled  bool      `gorm:"column:preset_option_group_enabled;not null" json:"preset_option_group_enabled"`

	PresetOptionGroupCreatedAt time.Time `gorm:"column:preset_option_group_created_at;autoCreateTime" json:"preset_option_group_created_at"`
	PresetOptionGroupUpdatedAt time.Time `gorm:"column:preset_option_group_updated_at;autoUpdateTime" json:"preset_option_group_updated_at"`
}

func (PresetOptionGroupModel) TableName() string { return "preset_option_groups" }

func (m *PresetOptionGroupModel) BeforeCreate(tx *gorm.DB) error {
	if m.PresetOptionGroupID == uuid.Nil {
		m.PresetOptionGroupID = uuid.New()
	}
	return nil
}

type PresetOptionItemModel struct {
	PresetOptionItemID        uuid.UUID `gorm:"column:preset_option_item_id;type:uuid;primaryKey" json:"preset_option_item_id"`
	PresetOptionItemGroupID   uuid.UUID `gorm:"column:preset_option_item_group_id;type:uuid;not null;index" json:"preset_option_item_group_id"`
	PresetOptionItemSortOrder int       `gorm:"column:preset_option_item_sort_order;not null" json:"preset_option_item_sort_order"`
	PresetOptionItemLabel     string    `gorm:"column:preset_option_item_label;type:varchar(200);not null" json:"preset_option_item_label"`
	PresetOptionItemAllowFill bool      `gorm:"column:preset_option_item_allow_fill;not null" json:"preset_option_item_allow_fill"`
	PresetOptionItemDesc      *string   `gorm:"column:preset_option_item_desc;type:text" json:"preset_option_item_desc,omitempty"`
	PresetOptionItemDescPopup bool      `gorm:"column:preset_option_item_desc_popup;not null" json:"preset_option_item_desc_popup"`
	PresetOptionItemImageURL  *string   `gorm:"column:preset_option_item_image_url;type:varchar(500)" json:"preset_option_item_image_url,omitempty"`

	PresetOptionItemCreatedAt time.Time `gorm:"column:preset_option_item_created_at;autoCreateTime" json:"preset_option_item_created_at"`
	PresetOptionItemUpdatedAt time.Time `gorm:"column:preset_option_item_updated_at;autoUpdateTime" json:"preset_option_item_updated_at"`
}

func (PresetOptionItemModel) TableName() string { return "preset_option_items" }

func (m *PresetOptionItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.PresetOptionItemID == uuid.Nil {
		m.PresetOptionItemID = uuid.New()
	}
	return nil
}
