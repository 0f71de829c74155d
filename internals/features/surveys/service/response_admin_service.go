// file: internals/features/surveys/service/response_admin_service.go
package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	permModel "surveyku_backend/internals/features/permissions/model"
	responseModel "surveyku_backend/internals/features/responses/model"
	dto "surveyku_backend/internals/features/surveys/dto"
	model "surveyku_backend/internals/features/surveys/model"
	"surveyku_backend/internals/features/surveys/schema"
	helper "surveyku_backend/internals/helpers"
)

/* =========================================================
   Rekap jawaban untuk admin: daftar, detail, analytics.
   Resource permission: "response", action view.
========================================================= */

func (s *SurveyService) requireResponseAccess(ctx context.Context, surveyID, userID uuid.UUID, action string) (*model.SurveyModel, error) {
	survey, err := s.requireSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequirePermission(ctx, &userID, permModel.ResourceResponse, survey, action); err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *SurveyService) ListResponses(ctx context.Context, surveyID, userID uuid.UUID, page, perPage int) ([]dto.ResponseListItemVO, int64, error) {
	if _, err := s.requireResponseAccess(ctx, surveyID, userID, permModel.ActionView); err != nil {
		return nil, 0, err
	}

	base := func() *gorm.DB {
		return s.DB.WithContext(ctx).
			Model(&responseModel.ResponseModel{}).
			Where("response_survey_id = ? AND response_status = ?", surveyID, responseModel.ResponseStatusSubmitted)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var responses []responseModel.ResponseModel
	if err := base().Order("response_submitted_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&responses).Error; err != nil {
		return nil, 0, err
	}

	questions, err := s.listQuestions(ctx, surveyID)
	if err != nil {
		return nil, 0, err
	}
	itemsByResponse, err := s.itemsByResponse(ctx, responses)
	if err != nil {
		return nil, 0, err
	}

	list := make([]dto.ResponseListItemVO, 0, len(responses))
	for i := range responses {
		r := &responses[i]
		byQuestion := indexItemsByQuestion(itemsByResponse[r.ResponseID])
		summary := make([]string, 0, 2)
		for j := 0; j < len(questions) && j < 2; j++ {
			q := &questions[j]
			if item, ok := byQuestion[q.SurveyQuestionID]; ok {
				summary = append(summary, formatAnswerShort(item, q))
			}
		}
		list = append(list, dto.ResponseListItemVO{
			ResponseID:      r.ResponseID,
			UserID:          r.ResponseUserID,
			DeviceID:        r.ResponseDeviceID,
			SubmittedAt:     r.ResponseSubmittedAt,
			DurationSeconds: r.ResponseDurationSeconds,
			SubmittedIP:     r.ResponseSubmittedIP,
			Summary:         summary,
		})
	}
	return list, total, nil
}

func (s *SurveyService) itemsByResponse(ctx context.Context, responses []responseModel.ResponseModel) (map[uuid.UUID][]responseModel.ResponseItemModel, error) {
	out := make(map[uuid.UUID][]responseModel.ResponseItemModel, len(responses))
	if len(responses) == 0 {
		return out, nil
	}
	ids := make([]uuid.UUID, 0, len(responses))
	for i := range responses {
		ids = append(ids, responses[i].ResponseID)
	}
	var items []responseModel.ResponseItemModel
	if err := s.DB.WithContext(ctx).
		Where("response_item_response_id IN ?", ids).
		Find(&items).Error; err != nil {
		return nil, err
	}
	for i := range items {
		rid := items[i].ResponseItemResponseID
		out[rid] = append(out[rid], items[i])
	}
	return out, nil
}

func indexItemsByQuestion(items []responseModel.ResponseItemModel) map[uuid.UUID]*responseModel.ResponseItemModel {
	m := make(map[uuid.UUID]*responseModel.ResponseItemModel, len(items))
	for i := range items {
		m[items[i].ResponseItemQuestionID] = &items[i]
	}
	return m
}

func (s *SurveyService) GetResponseDetail(ctx context.Context, surveyID, responseID, userID uuid.UUID) (*dto.ResponseDetailVO, error) {
	if _, err := s.requireResponseAccess(ctx, surveyID, userID, permModel.ActionView); err != nil {
		return nil, err
	}
	var r responseModel.ResponseModel
	err := s.DB.WithContext(ctx).
		Where("response_survey_id = ? AND response_id = ? AND response_status = ?",
			surveyID, responseID, responseModel.ResponseStatusSubmitted).
		First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	questions, err := s.listQuestions(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	var items []responseModel.ResponseItemModel
	if err := s.DB.WithContext(ctx).
		Where("response_item_response_id = ?", responseID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	byQuestion := indexItemsByQuestion(items)

	vo := &dto.ResponseDetailVO{
		ResponseID:      r.ResponseID,
		UserID:          r.ResponseUserID,
		DeviceID:        r.ResponseDeviceID,
		SubmittedAt:     r.ResponseSubmittedAt,
		DurationSeconds: r.ResponseDurationSeconds,
		SubmittedIP:     r.ResponseSubmittedIP,
		Answers:         make([]dto.ResponseAnswerVO, 0, len(questions)),
	}
	for i := range questions {
		q := &questions[i]
		display := "—"
		if item, ok := byQuestion[q.SurveyQuestionID]; ok {
			display = formatAnswerShort(item, q)
		}
		vo.Answers = append(vo.Answers, dto.ResponseAnswerVO{
			QuestionID: q.SurveyQuestionID,
			Type:       q.SurveyQuestionType,
			Title:      q.SurveyQuestionTitle,
			SortOrder:  q.SurveyQuestionSortOrder,
			Display:    display,
		})
	}
	return vo, nil
}

/* =========================================================
   Analytics
========================================================= */

func (s *SurveyService) GetAnalytics(ctx context.Context, surveyID, userID uuid.UUID) (*dto.SurveyAnalyticsVO, error) {
	if _, err := s.requireResponseAccess(ctx, surveyID, userID, permModel.ActionView); err != nil {
		return nil, err
	}
	var responses []responseModel.ResponseModel
	if err := s.DB.WithContext(ctx).
		Where("response_survey_id = ? AND response_status = ?", surveyID, responseModel.ResponseStatusSubmitted).
		Find(&responses).Error; err != nil {
		return nil, err
	}
	questions, err := s.listQuestions(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	itemsByResponse, err := s.itemsByResponse(ctx, responses)
	if err != nil {
		return nil, err
	}

	// kelompokkan ulang per pertanyaan
	itemsByQuestion := make(map[uuid.UUID][]*responseModel.ResponseItemModel)
	for _, items := range itemsByResponse {
		for i := range items {
			qid := items[i].ResponseItemQuestionID
			itemsByQuestion[qid] = append(itemsByQuestion[qid], &items[i])
		}
	}

	vo := &dto.SurveyAnalyticsVO{
		SurveyID:       surveyID,
		TotalResponses: int64(len(responses)),
		Questions:      make([]dto.QuestionAnalyticsVO, 0, len(questions)),
	}
	for i := range questions {
		q := &questions[i]
		items := itemsByQuestion[q.SurveyQuestionID]
		aq := dto.QuestionAnalyticsVO{
			QuestionID: q.SurveyQuestionID,
			Type:       q.SurveyQuestionType,
			Title:      q.SurveyQuestionTitle,
			SortOrder:  q.SurveyQuestionSortOrder,
			Answered:   int64(len(items)),
		}
		switch {
		case q.IsChoice():
			aq.Options = buildOptionStats(q, items)
		case q.SurveyQuestionType == model.QuestionTypeScale:
			avg, dist := buildScaleStats(items)
			aq.Average = avg
			aq.Scale = dist
		default:
			texts := make([]string, 0, len(items))
			for _, item := range items {
				if item.ResponseItemTextValue != nil {
					texts = append(texts, *item.ResponseItemTextValue)
				}
			}
			aq.Texts = texts
		}
		vo.Questions = append(vo.Questions, aq)
	}
	return vo, nil
}

// buildOptionStats hitung jumlah & rasio per opsi, termasuk slot "Lainnya".
// Rasio relatif terhadap jumlah responden yang menjawab pertanyaan ini.
func buildOptionStats(q *model.SurveyQuestionModel, items []*responseModel.ResponseItemModel) []dto.OptionStatVO {
	cfg := schema.ParseQuestionConfig(q.SurveyQuestionType, q.SurveyQuestionConfig)
	optionCount := cfg.Choice.OptionCount()

	picks := make([][]int, 0, len(items))
	for _, item := range items {
		if item.ResponseItemOptionIndex != nil {
			picks = append(picks, []int{*item.ResponseItemOptionIndex})
		} else if indices := item.OptionIndices(); len(indices) > 0 {
			picks = append(picks, indices)
		}
	}

	stats := make([]dto.OptionStatVO, 0, optionCount)
	for idx := 0; idx < optionCount; idx++ {
		var count int64
		for _, p := range picks {
			for _, v := range p {
				if v == idx {
					count++
					break
				}
			}
		}
		ratio := 0.0
		if len(picks) > 0 {
			ratio = float64(count) / float64(len(picks))
		}
		stats = append(stats, dto.OptionStatVO{
			Label: cfg.Choice.OptionLabel(idx),
			Count: count,
			Ratio: ratio,
		})
	}
	return stats
}

func buildScaleStats(items []*responseModel.ResponseItemModel) (*float64, []dto.ScaleStatVO) {
	var sum int64
	counts := make(map[int]int64)
	n := 0
	for _, item := range items {
		if item.ResponseItemScaleValue == nil {
			continue
		}
		v := *item.ResponseItemScaleValue
		sum += int64(v)
		counts[v]++
		n++
	}
	if n == 0 {
		return nil, []dto.ScaleStatVO{}
	}
	avg := float64(sum) / float64(n)

	values := make([]int, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Ints(values)
	dist := make([]dto.ScaleStatVO, 0, len(values))
	for _, v := range values {
		dist = append(dist, dto.ScaleStatVO{Value: v, Count: counts[v]})
	}
	return &avg, dist
}

/* =========================================================
   Format jawaban singkat
========================================================= */

// formatAnswerShort memformat satu item untuk ringkasan, detail, dan export.
// Jawaban pilihan di-resolve ke label opsinya; isian "Lainnya" ditempel
// setelah label.
func formatAnswerShort(item *responseModel.ResponseItemModel, q *model.SurveyQuestionModel) string {
	switch item.ResponseItemValueType {
	case responseModel.ValueTypeOption:
		cfg := schema.ParseQuestionConfig(q.SurveyQuestionType, q.SurveyQuestionConfig)
		label := ""
		if item.ResponseItemOptionIndex != nil {
			label = cfg.Choice.OptionLabel(*item.ResponseItemOptionIndex)
		} else if indices := item.OptionIndices(); len(indices) > 0 {
			parts := make([]string, 0, len(indices))
			for _, idx := range indices {
				parts = append(parts, cfg.Choice.OptionLabel(idx))
			}
			label = strings.Join(parts, ", ")
		}
		if item.ResponseItemTextValue != nil && strings.TrimSpace(*item.ResponseItemTextValue) != "" {
			return label + ": " + *item.ResponseItemTextValue
		}
		return label
	case responseModel.ValueTypeText:
		if item.ResponseItemTextValue != nil {
			return *item.ResponseItemTextValue
		}
		return ""
	case responseModel.ValueTypeScale:
		if item.ResponseItemScaleValue != nil {
			return strconv.Itoa(*item.ResponseItemScaleValue)
		}
		return ""
	}
	return ""
}
