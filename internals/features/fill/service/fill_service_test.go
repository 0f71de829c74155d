package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dto "surveyku_backend/internals/features/fill/dto"
	responseModel "surveyku_backend/internals/features/responses/model"
	surveyModel "surveyku_backend/internals/features/surveys/model"
	helper "surveyku_backend/internals/helpers"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&surveyModel.SurveyModel{},
		&surveyModel.SurveyQuestionModel{},
		&responseModel.ResponseModel{},
		&responseModel.ResponseItemModel{},
	))
	return db
}

func seedSurvey(t *testing.T, db *gorm.DB, mutate func(*surveyModel.SurveyModel)) *surveyModel.SurveyModel {
	t.Helper()
	s := &surveyModel.SurveyModel{
		SurveyTitle:            "Survei Kepuasan",
		SurveyStatus:           surveyModel.SurveyStatusCollecting,
		SurveyCreatorID:        uuid.New(),
		SurveyLimitOncePerUser: true,
	}
	if mutate != nil {
		mutate(s)
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func seedTextQuestion(t *testing.T, db *gorm.DB, surveyID uuid.UUID, title string, required bool) *surveyModel.SurveyQuestionModel {
	t.Helper()
	q := &surveyModel.SurveyQuestionModel{
		SurveyQuestionSurveyID: surveyID,
		SurveyQuestionType:     surveyModel.QuestionTypeShortText,
		SurveyQuestionTitle:    title,
		SurveyQuestionRequired: required,
	}
	require.NoError(t, db.Create(q).Error)
	return q
}

func seedChoiceQuestion(t *testing.T, db *gorm.DB, surveyID uuid.UUID, title string) *surveyModel.SurveyQuestionModel {
	t.Helper()
	q := &surveyModel.SurveyQuestionModel{
		SurveyQuestionSurveyID:  surveyID,
		SurveyQuestionType:      surveyModel.QuestionTypeSingleChoice,
		SurveyQuestionTitle:     title,
		SurveyQuestionRequired:  true,
		SurveyQuestionSortOrder: 1,
		SurveyQuestionConfig:    datatypes.JSON(`{"options": ["Ya", "Tidak"]}`),
	}
	require.NoError(t, db.Create(q).Error)
	return q
}

func userIdentity() (Identity, uuid.UUID) {
	id := uuid.New()
	return Identity{UserID: &id}, id
}

func assertBusinessCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	be, ok := err.(*helper.BusinessError)
	require.Truef(t, ok, "harus BusinessError, dapat %T: %v", err, err)
	assert.Equal(t, code, be.Code)
}

/* =========================================================
   Gate
========================================================= */

func TestGateSurveyNotFound(t *testing.T) {
	svc := NewFillService(setupTestDB(t))
	identity, _ := userIdentity()
	_, err := svc.GetFillMetadata(context.Background(), uuid.New(), identity)
	assertBusinessCode(t, err, helper.CodeSurveyNotFound)
}

func TestGateStatusOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFillService(db)
	identity, _ := userIdentity()

	draft := seedSurvey(t, db, func(s *surveyModel.SurveyModel) { s.SurveyStatus = surveyModel.SurveyStatusDraft })
	_, err := svc.GetFillMetadata(context.Background(), draft.SurveyID, identity)
	assertBusinessCode(t, err, helper.CodeSurveyNotStarted)

	paused := seedSurvey(t, db, func(s *surveyModel.SurveyModel) { s.SurveyStatus = surveyModel.SurveyStatusPaused })
	_, err = svc.GetFillMetadata(context.Background(), paused.SurveyID, identity)
	assertBusinessCode(t, err, helper.CodeSurveyEnded)

	ended := seedSurvey(t, db, func(s *surveyModel.SurveyModel) { s.SurveyStatus = surveyModel.SurveyStatusEnded })
	_, err = svc.GetFillMetadata(context.Background(), ended.SurveyID, identity)
	assertBusinessCode(t, err, helper.CodeSurveyEnded)
}

func TestGateTimeWindow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFillService(db)
	identity, _ := userIdentity()

	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	belumMulai := seedSurvey(t, db, func(s *surveyModel.SurveyModel) { s.SurveyStartTime = &future })
	_, err := svc.GetFillMetadata(context.Background(), belumMulai.SurveyID, identity)
	assertBusinessCode(t, err, helper.CodeSurveyNotStarted)

	lewat := seedSurvey(t, db, func(s *surveyModel.SurveyModel) { s.SurveyEndTime = &past })
	_, err = svc.GetFillMetadata(context.Background(), lewat.SurveyID, identity)
	assertBusinessCode(t, err, helper.CodeSurveyEnded)
}

func TestGateRequiresLoginForNonAnonymous(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFillService(db)
	survey := seedSurvey(t, db, nil)

	device := "device-1"
	_, err := svc.GetFillMetadata(context.Background(), survey.SurveyID, Identity{DeviceID: &device})
	assertBusinessCode(t, err, helper.CodeUnauthorized)
}

func TestGateAlreadySubmitted(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFillService(db)
	survey := seedSurvey(t, db, nil)
	seedTextQuestion(t, db, survey.SurveyID, "Nama", false)
	identity, _ := userIdentity()

	_, err := svc.Submit(context.Background(), survey.SurveyID, identity, "10.0.0.1", &dto.SubmitRequestDTO{})
	require.NoError(t, err)

	_, err = svc.GetFillMetadata(context.Background(), survey.SurveyID, identity)
	assertBusinessCode(t, err, helper.CodeSurveyAlreadySubmitted)

	_, err = svc.Submit(context.Background(), survey.SurveyID, identity, "10.0.0.1", &dto.SubmitRequestDTO{})
	assertBusinessCode(t, err, helper.CodeSurveyAlreadySubmitted)

	// user lain tetap boleh
	other, _ := userIdentity()
	_, err = svc.GetFillMetadata(context.Background(), survey.SurveyID, other)
	assert.NoError(t, err)
}

func TestGateOnceKeyedByUserOnAnonymousSurvey(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFillService(db)
	survey := seedSurvey(t, db, func(s *surveyModel.SurveyModel) { s.SurveyAllowAnonymous = true })
	seedTextQuestion(t, db, survey.SurveyID, "Saran", false)
	ctx := context.Background()

	userID := uuid.New()
	deviceA := "device-a"
	_, err := svc.Submit(ctx, survey.SurveyID, Identity{UserID: &userID, DeviceID: &deviceA}, "10.0.0.1", &dto.SubmitRequestDTO{})
	require.NoError(t, err)

	// ganti perangkat tidak menembus cek sekali-isi: kuncinya user id
	deviceB := "device-b"
	_, err = svc.Submit(ctx, survey.SurveyID, Identity{UserID: &userID, DeviceID: &deviceB}, "10.0.0.2", &dto.SubmitRequestDTO{})
	assertBusinessCode(t, err, helper.CodeSurveyAlreadySubmitted)

	// user lain dari perangkat yang sama tetap boleh
	other := uuid.New()
	_, err = svc.Submit(ctx, survey.SurveyID, Identity{UserID: &other, DeviceID: &deviceA}, "10.0.0.1", &dto.SubmitRequestDTO{})
	assert.NoError(t, err)
}

func TestAnonymousResubmitOverwritesSameRow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFillService(db)
	survey := seedSurvey(t, db, func(s *surveyModel.SurveyModel) { s.SurveyAllowAnonymous = true })
	q := seedTextQuestion(t, db, survey.SurveyID, "Saran", false)
	ctx := context.Background()

	device := "device-abc"
	identity := Identity{DeviceID: &device}
	first, err := svc.Submit(ctx, survey.SurveyID, identity, "10.0.0.1", &dto.SubmitRequestDTO{
		Items: []dto.SubmitItemDTO{{QuestionID: q.SurveyQuestionID, TextValue: ptrStr("awal")}},
	})
	require.NoError(t, err)

	// tanpa user id cek sekali-isi tidak bisa dievaluasi; submit ulang
	// dimensi yang sama menimpa row yang sama, bukan membuat row kedua
	second, err := svc.Submit(ctx, survey.SurveyID, identity, "10.0.0.2", &dto.SubmitRequestDTO{
		Items: []dto.SubmitItemDTO{{QuestionID: q.SurveyQuestionID, TextValue: ptrStr("revisi")}},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ResponseID, second.ResponseID)

	var rows []responseModel.ResponseModel
	require.NoError(t, db.Where("response_survey_id = ?", survey.SurveyID).Find(&rows).Error)
	require.Len(t, rows, 1)

	var items []responseModel.ResponseItemModel
	require.NoError(t, db.Where("response_item_response_id = ?", first.ResponseID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, "revisi", *items[0].ResponseItemTextValue)
}

func TestPreviewBypassesGateButCreatorOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFillService(db)
	survey := seedSurvey(t, db, func(s *surveyModel.SurveyModel) { s.SurveyStatus = surveyModel.SurveyStatusDraft })
	seedTextQuestion(t, db, survey.SurveyID, "Nama", false)

	vo, err := svc.GetFillMetadataForPreview(context.Background(), survey.SurveyID, &survey.SurveyCreatorID)
	require.NoError(t, err)
	assert.Len(t, vo.Questions, 1)

	stranger := uuid.New()
	_, err = svc.GetFillMetadataForPreview(context.Background(), survey.SurveyID, &stranger)
	assertBusinessCode(t, err, helper.CodeForbidden)

	// tanpa login bukan soal kepemilikan, tapi soal identitas
	_, err = svc.GetFillMetadataForPreview(context.Background(), survey.SurveyID, nil)
	assertBusinessCode(t, err, helper.CodeUnauthorized)
}

/* =========================================================
   Draft
========================================================= */

func TestSaveDraftReplacesItems(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFillService(db)
	survey := seedSurvey(t, db, nil)
	q1 := seedTextQuestion(t, db, survey.SurveyID, "Nama", false)
	q2 := seedTextQuestion(t, db, survey.SurveyID, "Alamat", false)
	identity, _ := userIdentity()
	ctx := context.Background()

	require.NoError(t, svc.SaveDraft(ctx, survey.SurveyID, identity, &dto.SubmitRequestDTO{
		Items: []dto.SubmitItemDTO{
			{QuestionID: q1.SurveyQuestionID, TextValue: ptrStr("Budi")},
			{QuestionID: q2.SurveyQuestionID, TextValue: ptrStr("Bandung")},
		},
	}))

	// simpan ulang dengan isi berbeda: item lama diganti seluruhnya
	require.NoError(t, svc.SaveDraft(ctx, survey.SurveyID, identity, &dto.SubmitRequestDTO{
		Items: []dto.SubmitItemDTO{
			{QuestionID: q1.SurveyQuestionID, TextValue: ptrStr("Ani")},
		},
	}))

	draft, err := svc.GetDraft(ctx, survey.SurveyID, identity)
	require.NoError(t, err)
	require.NotNil(t, draft)
	require.Len(t, draft.Items, 1)
	assert.Equal(t, "Ani", *draft.Items[0].TextValue)

	// tetap satu row draft
	var count int64
	require.NoError(t, db.Model(&responseModel.ResponseModel{}).
		Where("response_survey_id = ? AND response_status = ?", survey.SurveyID, responseModel.ResponseStatusDraft).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSaveDraftSilentNoOpOnGateViolation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFillService(db)
	survey := seedSurvey(t, db, func(s *surveyModel.SurveyModel) { s.SurveyStatus = surveyModel.SurveyStatusPaused })
	identity, _ := userIdentity()
	ctx := context.Background()

	// status gate dilanggar tapi tidak error dan tidak menyimpan apa pun
	require.NoError(t, svc.SaveDraft(ctx, survey.SurveyID, identity, &dto.SubmitRequestDTO{}))

	var count int64
	require.NoError(t, db.Model(&responseModel.ResponseModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// survei hilang tetap error
	err := svc.SaveDraft(ctx, uuid.New(), identity, &dto.SubmitRequestDTO{})
	assertBusinessCode(t, err, helper.CodeSurveyNotFound)
}

func TestSaveDraftMissingIdentityIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFillService(db)
	survey := seedSurvey(t, db, func(s *surveyModel.SurveyModel) { s.SurveyAllowAnonymous = true })
	ctx := context.Background()

	// survei anonim tanpa device id: tidak ada dimensi, no-op
	require.NoError(t, svc.SaveDraft(ctx, survey.SurveyID, Identity{}, &dto.SubmitRequestDTO{}))

	var count int64
	require.NoError(t, db.Model(&responseModel.ResponseModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestGetDraftNilWhenNone(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFillService(db)
	survey := seedSurvey(t, db, nil)
	identity, _ := userIdentity()

	draft, err := svc.GetDraft(context.Background(), survey.SurveyID, identity)
	require.NoError(t, err)
	assert.Nil(t, draft)
}

/* =========================================================
   Submit
========================================================= */

func TestSubmitPromotesDraftInPlace(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFillService(db)
	survey := seedSurvey(t, db, nil)
	q := seedTextQuestion(t, db, survey.SurveyID, "Nama", true)
	identity, _ := userIdentity()
	ctx := context.Background()

	require.NoError(t, svc.SaveDraft(ctx, survey.SurveyID, identity, &dto.SubmitRequestDTO{
		Items: []dto.SubmitItemDTO{{QuestionID: q.SurveyQuestionID, TextValue: ptrStr("Budi")}},
	}))

	var draftRow responseModel.ResponseModel
	require.NoError(t, db.Where("response_survey_id = ?", survey.SurveyID).First(&draftRow).Error)

	duration := 42
	result, err := svc.Submit(ctx, survey.SurveyID, identity, "10.0.0.9", &dto.SubmitRequestDTO{
		Items:           []dto.SubmitItemDTO{{QuestionID: q.SurveyQuestionID, TextValue: ptrStr("Budi Santoso")}},
		DurationSeconds: &duration,
	})
	require.NoError(t, err)

	// row draft yang sama dipromosikan, bukan row baru
	assert.Equal(t, draftRow.ResponseID, result.ResponseID)

	var rows []responseModel.ResponseModel
	require.NoError(t, db.Where("response_survey_id = ?", survey.SurveyID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, responseModel.ResponseStatusSubmitted, rows[0].ResponseStatus)
	require.NotNil(t, rows[0].ResponseSubmittedAt)
	assert.Equal(t, 42, *rows[0].ResponseDurationSeconds)
	assert.Equal(t, "10.0.0.9", *rows[0].ResponseSubmittedIP)

	// item draft diganti isi submit
	var items []responseModel.ResponseItemModel
	require.NoError(t, db.Where("response_item_response_id = ?", rows[0].ResponseID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, "Budi Santoso", *items[0].ResponseItemTextValue)
}

func TestSubmitValidationFailureKeepsNothing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFillService(db)
	survey := seedSurvey(t, db, nil)
	seedTextQuestion(t, db, survey.SurveyID, "Nama", true)
	identity, _ := userIdentity()

	_, err := svc.Submit(context.Background(), survey.SurveyID, identity, "10.0.0.1", &dto.SubmitRequestDTO{})
	assertBusinessCode(t, err, helper.CodeSubmitValidation)

	var count int64
	require.NoError(t, db.Model(&responseModel.ResponseModel{}).
		Where("response_status = ?", responseModel.ResponseStatusSubmitted).
		Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSubmitChoiceWithOtherText(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFillService(db)
	survey := seedSurvey(t, db, nil)
	q := &surveyModel.SurveyQuestionModel{
		SurveyQuestionSurveyID: survey.SurveyID,
		SurveyQuestionType:     surveyModel.QuestionTypeSingleChoice,
		SurveyQuestionTitle:    "Transportasi",
		SurveyQuestionRequired: true,
		SurveyQuestionConfig:   datatypes.JSON(`{"options": ["Bus", "Kereta"], "hasOtherOption": true}`),
	}
	require.NoError(t, db.Create(q).Error)
	identity, _ := userIdentity()

	_, err := svc.Submit(context.Background(), survey.SurveyID, identity, "10.0.0.1", &dto.SubmitRequestDTO{
		Items: []dto.SubmitItemDTO{
			{QuestionID: q.SurveyQuestionID, OptionIndex: ptrInt(2), TextValue: ptrStr("Sepeda")},
		},
	})
	require.NoError(t, err)

	var item responseModel.ResponseItemModel
	require.NoError(t, db.First(&item).Error)
	assert.Equal(t, responseModel.ValueTypeOption, item.ResponseItemValueType)
	assert.Equal(t, 2, *item.ResponseItemOptionIndex)
	assert.Equal(t, "Sepeda", *item.ResponseItemTextValue)
}

/* =========================================================
   Rate limit
========================================================= */

func TestSubmitIPLimit(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFillService(db)
	survey := seedSurvey(t, db, func(s *surveyModel.SurveyModel) {
		s.SurveyLimitOncePerUser = false
		s.SurveyLimitByIP = 2
	})
	seedTextQuestion(t, db, survey.SurveyID, "Saran", false)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		identity, _ := userIdentity()
		_, err := svc.Submit(ctx, survey.SurveyID, identity, "10.0.0.7", &dto.SubmitRequestDTO{})
		require.NoError(t, err)
	}

	identity, _ := userIdentity()
	_, err := svc.Submit(ctx, survey.SurveyID, identity, "10.0.0.7", &dto.SubmitRequestDTO{})
	assertBusinessCode(t, err, helper.CodeSurveyIPLimit)

	// IP lain masih bisa
	_, err = svc.Submit(ctx, survey.SurveyID, identity, "10.0.0.8", &dto.SubmitRequestDTO{})
	assert.NoError(t, err)
}

func TestSubmitStoresBothIdentityFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFillService(db)
	ctx := context.Background()

	login := seedSurvey(t, db, nil)
	seedTextQuestion(t, db, login.SurveyID, "Saran", false)
	userID := uuid.New()
	device := "device-xy"
	_, err := svc.Submit(ctx, login.SurveyID, Identity{UserID: &userID, DeviceID: &device}, "10.0.0.1", &dto.SubmitRequestDTO{})
	require.NoError(t, err)

	var row responseModel.ResponseModel
	require.NoError(t, db.Where("response_survey_id = ?", login.SurveyID).First(&row).Error)
	require.NotNil(t, row.ResponseUserID)
	assert.Equal(t, userID, *row.ResponseUserID)
	require.NotNil(t, row.ResponseDeviceID)
	assert.Equal(t, device, *row.ResponseDeviceID)

	// survei anonim: user id yang kebetulan login ikut tersimpan
	anon := seedSurvey(t, db, func(s *surveyModel.SurveyModel) { s.SurveyAllowAnonymous = true })
	seedTextQuestion(t, db, anon.SurveyID, "Saran", false)
	_, err = svc.Submit(ctx, anon.SurveyID, Identity{UserID: &userID, DeviceID: &device}, "10.0.0.1", &dto.SubmitRequestDTO{})
	require.NoError(t, err)

	var anonRow responseModel.ResponseModel
	require.NoError(t, db.Where("response_survey_id = ?", anon.SurveyID).First(&anonRow).Error)
	require.NotNil(t, anonRow.ResponseUserID)
	assert.Equal(t, userID, *anonRow.ResponseUserID)
	require.NotNil(t, anonRow.ResponseDeviceID)
}

func TestSubmitDeviceLimitOnLoginSurvey(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFillService(db)
	survey := seedSurvey(t, db, func(s *surveyModel.SurveyModel) {
		s.SurveyLimitOncePerUser = false
		s.SurveyLimitByDevice = 1
	})
	seedTextQuestion(t, db, survey.SurveyID, "Saran", false)
	ctx := context.Background()

	device := "device-bersama"
	u1 := uuid.New()
	_, err := svc.Submit(ctx, survey.SurveyID, Identity{UserID: &u1, DeviceID: &device}, "10.0.0.1", &dto.SubmitRequestDTO{})
	require.NoError(t, err)

	// user berbeda, perangkat sama: batas perangkat tetap berlaku
	u2 := uuid.New()
	_, err = svc.Submit(ctx, survey.SurveyID, Identity{UserID: &u2, DeviceID: &device}, "10.0.0.1", &dto.SubmitRequestDTO{})
	assertBusinessCode(t, err, helper.CodeSurveyDeviceLimit)
}

func TestSubmitDeviceLimit(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFillService(db)
	survey := seedSurvey(t, db, func(s *surveyModel.SurveyModel) {
		s.SurveyAllowAnonymous = true
		s.SurveyLimitOncePerUser = false
		s.SurveyLimitByDevice = 1
	})
	seedTextQuestion(t, db, survey.SurveyID, "Saran", false)
	ctx := context.Background()

	device := "device-x"
	identity := Identity{DeviceID: &device}
	_, err := svc.Submit(ctx, survey.SurveyID, identity, "10.0.0.1", &dto.SubmitRequestDTO{})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, survey.SurveyID, identity, "10.0.0.2", &dto.SubmitRequestDTO{})
	assertBusinessCode(t, err, helper.CodeSurveyDeviceLimit)
}
