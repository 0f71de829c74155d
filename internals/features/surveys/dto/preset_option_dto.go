// file: internals/features/surveys/dto/preset_option_dto.go
package dto

import (
	"github.com/google/uuid"

	model "surveyku_backend/internals/features/surveys/model"
)

type PresetItemInput struct {
	SortOrder *int    `json:"sort_order"`
	Label     string  `json:"label" validate:"max=200"`
	AllowFill bool    `json:"allow_fill"`
	Desc      *string `json:"desc" validate:"omitempty,max=2000"`
	DescPopup bool    `json:"desc_popup"`
	ImageURL  *string `json:"image_url" validate:"omitempty,max=500"`
}

type UpsertPresetGroupRequest struct {
	Category string            `json:"category" validate:"max=100"`
	Name     string            `json:"name" validate:"max=100"`
	Sort     *int              `json:"sort"`
	Enabled  *bool             `json:"enabled"`
	Items    []PresetItemInput `json:"items" validate:"dive"`
}

type PresetQueryRequest struct {
	Keyword  string `query:"keyword"`
	Category string `query:"category"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}

type PresetItemVO struct {
	ItemID    uuid.UUID `json:"item_id"`
	SortOrder int       `json:"sort_order"`
	Label     string    `json:"label"`
	AllowFill bool      `json:"allow_fill"`
	Desc      *string   `json:"desc,omitempty"`
	DescPopup bool      `json:"desc_popup"`
	ImageURL  *string   `json:"image_url,omitempty"`
}

type PresetGroupVO struct {
	GroupID  uuid.UUID `json:"group_id"`
	Category string    `json:"category"`
	Name     string    `json:"name"`
	Sort     int       `json:"sort"`
	Enabled  bool      `json:"enabled"`
}

type PresetGroupDetailVO struct {
	PresetGroupVO
	Items []PresetItemVO `json:"items"`
}

// PresetCategoryVO: satu kategori beserta grup aktifnya, untuk pohon
// pustaka opsi di editor pertanyaan.
type PresetCategoryVO struct {
	Category string                `json:"category"`
	Groups   []PresetGroupDetailVO `json:"groups"`
}

func NewPresetGroupVO(g *model.PresetOptionGroupModel) PresetGroupVO {
	return PresetGroupVO{
		GroupID:  g.PresetOptionGroupID,
		Category: g.PresetOptionGroupCategory,
		Name:     g.PresetOptionGroupName,
		Sort:     g.PresetOptionGroupSort,
		Enabled:  g.PresetOptionGroupEnabled,
	}
}

func NewPresetItemVOs(items []model.PresetOptionItemModel) []PresetItemVO {
	out := make([]PresetItemVO, 0, len(items))
	for i := range items {
		it := &items[i]
		out = append(out, PresetItemVO{
			ItemID:    it.PresetOptionItemID,
			SortOrder: it.PresetOptionItemSortOrder,
			Label:     it.PresetOptionItemLabel,
			AllowFill: it.PresetOptionItemAllowFill,
			Desc:      it.PresetOptionItemDesc,
			DescPopup: it.PresetOptionItemDescPopup,
			ImageURL:  it.PresetOptionItemImageURL,
		})
	}
	return out
}
