// file: internals/features/fill/service/answer_validator.go
package service

import (
	"fmt"

	"github.com/google/uuid"

	dto "surveyku_backend/internals/features/fill/dto"
	"surveyku_backend/internals/features/surveys/schema"
	surveyModel "surveyku_backend/internals/features/surveys/model"
	helper "surveyku_backend/internals/helpers"
)

/* =========================================================
   Validasi isi jawaban terhadap konfigurasi pertanyaan.
   Fail-fast: pelanggaran pertama langsung dikembalikan
   (urut item dulu, lalu urut pertanyaan wajib).
========================================================= */

func questionLabel(q *surveyModel.SurveyQuestionModel) string {
	if q.SurveyQuestionTitle != "" {
		return q.SurveyQuestionTitle
	}
	return fmt.Sprintf("Pertanyaan %d", q.SurveyQuestionSortOrder+1)
}

// validateSubmitItems cek semua item terhadap daftar pertanyaan survei
// (questions sudah urut sort_order), lalu cek coverage pertanyaan wajib.
func validateSubmitItems(items []dto.SubmitItemDTO, questions []surveyModel.SurveyQuestionModel) error {
	questionMap := make(map[uuid.UUID]*surveyModel.SurveyQuestionModel, len(questions))
	for i := range questions {
		questionMap[questions[i].SurveyQuestionID] = &questions[i]
	}

	answered := make(map[uuid.UUID]bool, len(items))
	for i := range items {
		item := &items[i]
		q, ok := questionMap[item.QuestionID]
		if !ok {
			return helper.SubmitValidationError("Pertanyaan bukan bagian dari survei ini")
		}
		if answered[item.QuestionID] {
			return helper.SubmitValidationError("Pertanyaan yang sama tidak boleh dijawab dua kali")
		}
		answered[item.QuestionID] = true
		if err := validateItemValue(item, q); err != nil {
			return err
		}
	}

	for i := range questions {
		q := &questions[i]
		if q.SurveyQuestionRequired && !answered[q.SurveyQuestionID] {
			return helper.SubmitValidationError("Mohon isi pertanyaan wajib: " + questionLabel(q))
		}
	}
	return nil
}

func validateItemValue(item *dto.SubmitItemDTO, q *surveyModel.SurveyQuestionModel) error {
	cfg := schema.ParseQuestionConfig(q.SurveyQuestionType, q.SurveyQuestionConfig)

	switch q.SurveyQuestionType {
	case surveyModel.QuestionTypeSingleChoice:
		if item.OptionIndex == nil {
			return helper.SubmitValidationError("Pilih salah satu opsi: " + questionLabel(q))
		}
		if *item.OptionIndex < 0 || *item.OptionIndex >= cfg.Choice.OptionCount() {
			return helper.SubmitValidationError("Opsi tidak valid: " + questionLabel(q))
		}

	case surveyModel.QuestionTypeMultipleChoice:
		if len(item.OptionIndices) == 0 {
			if q.SurveyQuestionRequired {
				return helper.SubmitValidationError("Pilih minimal satu opsi: " + questionLabel(q))
			}
			return nil
		}
		optCount := cfg.Choice.OptionCount()
		for _, idx := range item.OptionIndices {
			if idx < 0 || idx >= optCount {
				return helper.SubmitValidationError("Opsi tidak valid: " + questionLabel(q))
			}
		}
		chosen := len(item.OptionIndices)
		if chosen < cfg.Choice.MinChoices {
			return helper.SubmitValidationError(fmt.Sprintf("Pilih minimal %d opsi: %s", cfg.Choice.MinChoices, questionLabel(q)))
		}
		if chosen > cfg.Choice.EffectiveMaxChoices() {
			return helper.SubmitValidationError(fmt.Sprintf("Pilih maksimal %d opsi: %s", cfg.Choice.MaxChoices, questionLabel(q)))
		}

	case surveyModel.QuestionTypeShortText, surveyModel.QuestionTypeLongText:
		if item.TextValue == nil {
			if q.SurveyQuestionRequired {
				return helper.SubmitValidationError("Mohon diisi: " + questionLabel(q))
			}
			return nil
		}
		value := *item.TextValue
		if value == "" {
			return nil
		}
		if cfg.Text.MaxLength > 0 && len([]rune(value)) > cfg.Text.MaxLength {
			return helper.SubmitValidationError(fmt.Sprintf("Maksimal %d karakter: %s", cfg.Text.MaxLength, questionLabel(q)))
		}
		if !cfg.Text.Matches(value) {
			return helper.SubmitValidationError(cfg.Text.ValidationMessage() + ": " + questionLabel(q))
		}

	case surveyModel.QuestionTypeScale:
		if item.ScaleValue == nil {
			return helper.SubmitValidationError("Pilih nilai skala: " + questionLabel(q))
		}
		if *item.ScaleValue < cfg.Scale.Min || *item.ScaleValue > cfg.Scale.Max {
			return helper.SubmitValidationError(fmt.Sprintf("Nilai harus %d..%d: %s", cfg.Scale.Min, cfg.Scale.Max, questionLabel(q)))
		}

	default:
		return helper.SubmitValidationError(fmt.Sprintf("Tipe pertanyaan tidak didukung: %s", q.SurveyQuestionType))
	}
	return nil
}
