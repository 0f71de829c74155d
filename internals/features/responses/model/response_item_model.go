package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ValueType string

const (
	ValueTypeOption ValueType = "OPTION"
	ValueTypeText   ValueType = "TEXT"
	ValueTypeScale  ValueType = "SCALE"
)

// ResponseItemModel: satu jawaban per pertanyaan per response.
// value_type diturunkan dari field yang terisi saat row dibangun
// (lihat BuildResponseItem), bukan dari input caller.
type ResponseItemModel struct {
	ResponseItemID         uuid.UUID `gorm:"column:response_item_id;type:uuid;primaryKey" json:"response_item_id"`
	ResponseItemResponseID uuid.UUID `gorm:"column:response_item_response_id;type:uuid;not null;index" json:"response_item_response_id"`
	ResponseItemQuestionID uuid.UUID `gorm:"column:response_item_question_id;type:uuid;not null;index" json:"response_item_question_id"`
	ResponseItemValueType  ValueType `gorm:"column:response_item_value_type;type:varchar(12);not null" json:"response_item_value_type"`

	ResponseItemOptionIndex   *int           `gorm:"column:response_item_option_index" json:"response_item_option_index,omitempty"`
	ResponseItemOptionIndices datatypes.JSON `gorm:"column:response_item_option_indices;type:jsonb" json:"response_item_option_indices,omitempty"`
	ResponseItemTextValue     *string        `gorm:"column:response_item_text_value;type:text" json:"response_item_text_value,omitempty"`
	ResponseItemScaleValue    *int           `gorm:"column:response_item_scale_value" json:"response_item_scale_value,omitempty"`

	ResponseItemCreatedAt time.Time `gorm:"column:response_item_created_at;autoCreateTime" json:"response_item_created_at"`
}

func (ResponseItemModel) TableName() string { return "response_items" }

func (m *ResponseItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.ResponseItemID == uuid.Nil {
		m.ResponseItemID = uuid.New()
	}
	return nil
}

// OptionIndices decode response_item_option_indices (jsonb array) ke []int.
// Array kosong/invalid dianggap tidak ada jawaban multi.
func (m *ResponseItemModel) OptionIndices() []int {
	if len(m.ResponseItemOptionIndices) == 0 {
		return nil
	}
	var out []int
	if err := json.Unmarshal(m.ResponseItemOptionIndices, &out); err != nil {
		return nil
	}
	return out
}

// BuildResponseItem membangun row item dari nilai submit. Mengembalikan nil
// bila tidak ada satupun nilai terisi (item kosong tidak disimpan).
func BuildResponseItem(responseID, questionID uuid.UUID, optionIndex *int, optionIndices []int, textValue *string, scaleValue *int) *ResponseItemModel {
	ri := &ResponseItemModel{
		ResponseItemResponseID: responseID,
		ResponseItemQuestionID: questionID,
	}
	switch {
	case optionIndex != nil:
		ri.ResponseItemValueType = ValueTypeOption
		ri.ResponseItemOptionIndex = optionIndex
		if textValue != nil && *textValue != "" {
			ri.ResponseItemTextValue = textValue
		}
	case len(optionIndices) > 0:
		ri.ResponseItemValueType = ValueTypeOption
		b, _ := json.Marshal(optionIndices)
		ri.ResponseItemOptionIndices = datatypes.JSON(b)
		if textValue != nil && *textValue != "" {
			ri.ResponseItemTextValue = textValue
		}
	case textValue != nil:
		ri.ResponseItemValueType = ValueTypeText
		ri.ResponseItemTextValue = textValue
	case scaleValue != nil:
		ri.ResponseItemValueType = ValueTypeScale
		ri.ResponseItemScaleValue = scaleValue
	default:
		return nil
	}
	return ri
}
