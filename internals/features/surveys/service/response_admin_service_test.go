package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	responseModel "surveyku_backend/internals/features/responses/model"
	model "surveyku_backend/internals/features/surveys/model"
	helper "surveyku_backend/internals/helpers"
)

func seedSubmittedResponse(t *testing.T, db *gorm.DB, surveyID uuid.UUID, submittedAt time.Time) *responseModel.ResponseModel {
	t.Helper()
	userID := uuid.New()
	r := &responseModel.ResponseModel{
		ResponseSurveyID:    surveyID,
		ResponseUserID:      &userID,
		ResponseStatus:      responseModel.ResponseStatusSubmitted,
		ResponseSubmittedAt: &submittedAt,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func seedItem(t *testing.T, db *gorm.DB, item *responseModel.ResponseItemModel) {
	t.Helper()
	require.NoError(t, db.Create(item).Error)
}

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

func TestListResponsesSummary(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSurveyService(db)
	adminID := seedAdmin(t, db)
	surveyID := createSurvey(t, svc, adminID)
	ctx := context.Background()

	q1 := addQuestion(t, svc, surveyID, adminID, "Nama")
	q2 := addQuestion(t, svc, surveyID, adminID, "Alamat")
	addQuestion(t, svc, surveyID, adminID, "Saran")

	lama := seedSubmittedResponse(t, db, surveyID, time.Now().Add(-time.Hour))
	seedItem(t, db, responseModel.BuildResponseItem(lama.ResponseID, q1, nil, nil, strp("Budi"), nil))
	seedItem(t, db, responseModel.BuildResponseItem(lama.ResponseID, q2, nil, nil, strp("Bandung"), nil))

	baru := seedSubmittedResponse(t, db, surveyID, time.Now())
	seedItem(t, db, responseModel.BuildResponseItem(baru.ResponseID, q1, nil, nil, strp("Ani"), nil))

	// draft tidak pernah ikut rekap
	require.NoError(t, db.Create(&responseModel.ResponseModel{
		ResponseSurveyID: surveyID,
		ResponseStatus:   responseModel.ResponseStatusDraft,
	}).Error)

	list, total, err := svc.ListResponses(ctx, surveyID, adminID, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, list, 2)

	// terbaru dulu
	assert.Equal(t, baru.ResponseID, list[0].ResponseID)
	assert.Equal(t, []string{"Ani"}, list[0].Summary)
	// ringkasan maksimal dua jawaban pertama
	assert.Equal(t, []string{"Budi", "Bandung"}, list[1].Summary)
}

func TestGetResponseDetail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSurveyService(db)
	adminID := seedAdmin(t, db)
	surveyID := createSurvey(t, svc, adminID)
	ctx := context.Background()

	q := &model.SurveyQuestionModel{
		SurveyQuestionSurveyID: surveyID,
		SurveyQuestionType:     model.QuestionTypeSingleChoice,
		SurveyQuestionTitle:    "Transportasi",
		SurveyQuestionConfig:   datatypes.JSON(`{"options": ["Bus", "Kereta"], "hasOtherOption": true}`),
	}
	require.NoError(t, db.Create(q).Error)
	qKosong := addQuestion(t, svc, surveyID, adminID, "Saran")

	r := seedSubmittedResponse(t, db, surveyID, time.Now())
	seedItem(t, db, responseModel.BuildResponseItem(r.ResponseID, q.SurveyQuestionID, intp(2), nil, strp("Sepeda"), nil))

	detail, err := svc.GetResponseDetail(ctx, surveyID, r.ResponseID, adminID)
	require.NoError(t, err)
	require.Len(t, detail.Answers, 2)

	byTitle := map[string]string{}
	for _, a := range detail.Answers {
		byTitle[a.Title] = a.Display
	}
	// jawaban "Lainnya" ditempel isiannya
	assert.Equal(t, "Lainnya: Sepeda", byTitle["Transportasi"])
	// pertanyaan tanpa jawaban muncul dengan strip
	assert.Equal(t, "—", byTitle["Saran"])
	_ = qKosong

	// draft atau id asing: tidak ditemukan
	_, err = svc.GetResponseDetail(ctx, surveyID, uuid.New(), adminID)
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestGetAnalytics(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSurveyService(db)
	adminID := seedAdmin(t, db)
	surveyID := createSurvey(t, svc, adminID)
	ctx := context.Background()

	pilihan := &model.SurveyQuestionModel{
		SurveyQuestionSurveyID: surveyID,
		SurveyQuestionType:     model.QuestionTypeMultipleChoice,
		SurveyQuestionTitle:    "Hobi",
		SurveyQuestionConfig:   datatypes.JSON(`{"options": ["Baca", "Olahraga", "Musik"]}`),
	}
	require.NoError(t, db.Create(pilihan).Error)
	skala := &model.SurveyQuestionModel{
		SurveyQuestionSurveyID:  surveyID,
		SurveyQuestionType:      model.QuestionTypeScale,
		SurveyQuestionTitle:     "Kepuasan",
		SurveyQuestionSortOrder: 1,
		SurveyQuestionConfig:    datatypes.JSON(`{"scaleMin": 1, "scaleMax": 5}`),
	}
	require.NoError(t, db.Create(skala).Error)
	isian := &model.SurveyQuestionModel{
		SurveyQuestionSurveyID:  surveyID,
		SurveyQuestionType:      model.QuestionTypeShortText,
		SurveyQuestionTitle:     "Masukan",
		SurveyQuestionSortOrder: 2,
	}
	require.NoError(t, db.Create(isian).Error)

	r1 := seedSubmittedResponse(t, db, surveyID, time.Now())
	seedItem(t, db, responseModel.BuildResponseItem(r1.ResponseID, pilihan.SurveyQuestionID, nil, []int{0, 1}, nil, nil))
	seedItem(t, db, responseModel.BuildResponseItem(r1.ResponseID, skala.SurveyQuestionID, nil, nil, nil, intp(4)))
	seedItem(t, db, responseModel.BuildResponseItem(r1.ResponseID, isian.SurveyQuestionID, nil, nil, strp("Mantap"), nil))

	r2 := seedSubmittedResponse(t, db, surveyID, time.Now())
	seedItem(t, db, responseModel.BuildResponseItem(r2.ResponseID, pilihan.SurveyQuestionID, nil, []int{0}, nil, nil))
	seedItem(t, db, responseModel.BuildResponseItem(r2.ResponseID, skala.SurveyQuestionID, nil, nil, nil, intp(2)))

	vo, err := svc.GetAnalytics(ctx, surveyID, adminID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, vo.TotalResponses)
	require.Len(t, vo.Questions, 3)

	hobi := vo.Questions[0]
	assert.EqualValues(t, 2, hobi.Answered)
	require.Len(t, hobi.Options, 3)
	assert.Equal(t, "Baca", hobi.Options[0].Label)
	assert.EqualValues(t, 2, hobi.Options[0].Count)
	assert.InDelta(t, 1.0, hobi.Options[0].Ratio, 1e-9)
	assert.EqualValues(t, 1, hobi.Options[1].Count)
	assert.InDelta(t, 0.5, hobi.Options[1].Ratio, 1e-9)
	assert.EqualValues(t, 0, hobi.Options[2].Count)

	kepuasan := vo.Questions[1]
	require.NotNil(t, kepuasan.Average)
	assert.InDelta(t, 3.0, *kepuasan.Average, 1e-9)
	require.Len(t, kepuasan.Scale, 2)
	assert.Equal(t, 2, kepuasan.Scale[0].Value)
	assert.Equal(t, 4, kepuasan.Scale[1].Value)

	masukan := vo.Questions[2]
	assert.Equal(t, []string{"Mantap"}, masukan.Texts)
}

func TestResponsesRequireViewPermission(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSurveyService(db)
	adminID := seedAdmin(t, db)
	surveyID := createSurvey(t, svc, adminID)

	tanpaIzin := uuid.New()
	_, _, err := svc.ListResponses(context.Background(), surveyID, tanpaIzin, 1, 20)
	assert.ErrorIs(t, err, helper.ErrForbidden)
}
