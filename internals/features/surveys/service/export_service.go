// file: internals/features/surveys/service/export_service.go
package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	permModel "surveyku_backend/internals/features/permissions/model"
	responseModel "surveyku_backend/internals/features/responses/model"
	model "surveyku_backend/internals/features/surveys/model"
)

/* =========================================================
   Export jawaban ke xlsx. Header: waktu submit, durasi, lalu
   judul tiap pertanyaan urut sort_order. Kolom isian dipaksa
   berformat teks supaya Excel tidak mengubah angka/NIK.
========================================================= */

const exportSheetName = "Jawaban"

func (s *SurveyService) ExportResponses(ctx context.Context, surveyID, userID uuid.UUID) (*bytes.Buffer, string, error) {
	survey, err := s.requireResponseAccess(ctx, surveyID, userID, permModel.ActionExport)
	if err != nil {
		return nil, "", err
	}
	questions, err := s.listQuestions(ctx, surveyID)
	if err != nil {
		return nil, "", err
	}
	var responses []responseModel.ResponseModel
	if err := s.DB.WithContext(ctx).
		Where("response_survey_id = ? AND response_status = ?", surveyID, responseModel.ResponseStatusSubmitted).
		Order("response_submitted_at ASC").
		Find(&responses).Error; err != nil {
		return nil, "", err
	}
	itemsByResponse, err := s.itemsByResponse(ctx, responses)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName(f.GetSheetName(0), exportSheetName)

	textStyle, err := f.NewStyle(&excelize.Style{NumFmt: 49}) // @ = format teks
	if err != nil {
		return nil, "", err
	}

	header := []any{"Waktu submit", "Durasi (detik)"}
	for i := range questions {
		header = append(header, questions[i].SurveyQuestionTitle)
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		return nil, "", err
	}

	for rowIdx := range responses {
		r := &responses[rowIdx]
		byQuestion := indexItemsByQuestion(itemsByResponse[r.ResponseID])

		row := make([]any, 0, 2+len(questions))
		submittedAt := ""
		if r.ResponseSubmittedAt != nil {
			submittedAt = r.ResponseSubmittedAt.Format("2006-01-02 15:04:05")
		}
		row = append(row, submittedAt)
		duration := 0
		if r.ResponseDurationSeconds != nil {
			duration = *r.ResponseDurationSeconds
		}
		row = append(row, duration)
		for i := range questions {
			q := &questions[i]
			value := ""
			if item, ok := byQuestion[q.SurveyQuestionID]; ok {
				value = formatAnswerShort(item, q)
			}
			row = append(row, value)
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return nil, "", err
		}
	}

	// paksa kolom teks berformat teks
	for i := range questions {
		q := &questions[i]
		if q.SurveyQuestionType != model.QuestionTypeShortText && q.SurveyQuestionType != model.QuestionTypeLongText {
			continue
		}
		col, err := excelize.ColumnNumberToName(3 + i)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetColStyle(exportSheetName, col, textStyle); err != nil {
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("jawaban-%s.xlsx", survey.SurveyID)
	return buf, filename, nil
}
