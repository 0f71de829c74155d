// file: internals/features/fill/service/fill_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "surveyku_backend/internals/features/fill/dto"
	responseModel "surveyku_backend/internals/features/responses/model"
	surveyModel "surveyku_backend/internals/features/surveys/model"
	helper "surveyku_backend/internals/helpers"
)

/* =========================================================
   FillService: engine pengisian survei.
   Gate akses, draft, dan submit. Semua mutasi submit berjalan
   di dalam satu transaksi DB.
========================================================= */

type FillService struct {
	DB *gorm.DB
}

func NewFillService(db *gorm.DB) *FillService {
	return &FillService{DB: db}
}

// Identity: identitas pengisi. Kunci pencarian draft mengikuti dimensi
// survei (UserID untuk survei login, DeviceID untuk survei anonim), tapi
// kedua kolom identitas selalu ikut tersimpan di row respons bila ada.
type Identity struct {
	UserID   *uuid.UUID
	DeviceID *string
}

// deviceID menormalkan string kosong jadi nil.
func (id Identity) deviceID() *string {
	if id.DeviceID == nil || *id.DeviceID == "" {
		return nil
	}
	return id.DeviceID
}

// dimension mengembalikan kolom+nilai kunci pencarian untuk survei ini.
// ok=false bila dimensi yang dibutuhkan tidak tersedia.
func (id Identity) dimension(s *surveyModel.SurveyModel) (column string, value any, ok bool) {
	if s.SurveyAllowAnonymous {
		if id.deviceID() == nil {
			return "", nil, false
		}
		return "response_device_id", *id.DeviceID, true
	}
	if id.UserID == nil {
		return "", nil, false
	}
	return "response_user_id", *id.UserID, true
}

/* =========================================================
   Gate akses
========================================================= */

func (s *FillService) loadSurvey(ctx context.Context, db *gorm.DB, surveyID uuid.UUID) (*surveyModel.SurveyModel, error) {
	var survey surveyModel.SurveyModel
	if err := db.WithContext(ctx).
		First(&survey, "survey_id = ?", surveyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrSurveyNotFound
		}
		return nil, err
	}
	return &survey, nil
}

// checkAccess menjalankan rangkaian cek gate secara berurutan terhadap
// survei yang sudah dimuat. Cek sekali-isi dilewati bila skipOnce=true
// (dipakai saveDraft, draft tidak dihitung sebagai pengisian).
func (s *FillService) checkAccess(ctx context.Context, db *gorm.DB, survey *surveyModel.SurveyModel, identity Identity, skipOnce bool) error {
	if survey.SurveyStatus == surveyModel.SurveyStatusDraft {
		return helper.ErrSurveyNotStarted
	}
	if !survey.IsCollecting() {
		return helper.ErrSurveyEnded
	}

	now := time.Now()
	if survey.SurveyStartTime != nil && now.Before(*survey.SurveyStartTime) {
		return helper.ErrSurveyNotStarted
	}
	if survey.SurveyEndTime != nil && now.After(*survey.SurveyEndTime) {
		return helper.ErrSurveyEnded
	}

	// survei non-anonim wajib login
	if !survey.SurveyAllowAnonymous && identity.UserID == nil {
		return helper.ErrUnauthorized
	}

	// cek sekali-isi selalu dikunci ke user login; tanpa user id
	// (pengisi anonim) cek ini tidak bisa dievaluasi
	if skipOnce || !survey.SurveyLimitOncePerUser || identity.UserID == nil {
		return nil
	}
	var count int64
	if err := db.WithContext(ctx).
		Model(&responseModel.ResponseModel{}).
		Where("response_survey_id = ? AND response_status = ? AND response_user_id = ?",
			survey.SurveyID, responseModel.ResponseStatusSubmitted, *identity.UserID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return helper.ErrSurveyAlreadySubmitted
	}
	return nil
}

func (s *FillService) loadQuestions(ctx context.Context, db *gorm.DB, surveyID uuid.UUID) ([]surveyModel.SurveyQuestionModel, error) {
	var questions []surveyModel.SurveyQuestionModel
	if err := db.WithContext(ctx).
		Where("survey_question_survey_id = ?", surveyID).
		Order("survey_question_sort_order ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

/* =========================================================
   Metadata pengisian
========================================================= */

// GetFillMetadata: metadata survei + pertanyaan untuk halaman pengisian.
// Melewati gate penuh (termasuk cek sudah-pernah-isi).
func (s *FillService) GetFillMetadata(ctx context.Context, surveyID uuid.UUID, identity Identity) (*dto.FillSurveyVO, error) {
	survey, err := s.loadSurvey(ctx, s.DB, surveyID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccess(ctx, s.DB, survey, identity, false); err != nil {
		return nil, err
	}
	questions, err := s.loadQuestions(ctx, s.DB, surveyID)
	if err != nil {
		return nil, err
	}
	return dto.NewFillSurveyVO(survey, questions), nil
}

// GetFillMetadataForPreview: pratinjau untuk creator, tanpa gate status
// maupun jendela waktu. Selain creator ditolak.
func (s *FillService) GetFillMetadataForPreview(ctx context.Context, surveyID uuid.UUID, userID *uuid.UUID) (*dto.FillSurveyVO, error) {
	survey, err := s.loadSurvey(ctx, s.DB, surveyID)
	if err != nil {
		return nil, err
	}
	if userID == nil {
		return nil, helper.ErrUnauthorized
	}
	if survey.SurveyCreatorID != *userID {
		return nil, helper.ErrForbidden
	}
	questions, err := s.loadQuestions(ctx, s.DB, surveyID)
	if err != nil {
		return nil, err
	}
	return dto.NewFillSurveyVO(survey, questions), nil
}

/* =========================================================
   Draft
========================================================= */

// SaveDraft menyimpan jawaban sementara. Satu row DRAFT per dimensi
// identitas, item lama diganti seluruhnya (delete lalu insert).
// Survei yang hilang tetap error NotFound; pelanggaran gate lain dan
// dimensi identitas yang kosong di-no-op diam-diam supaya autosave di
// klien tidak berisik.
func (s *FillService) SaveDraft(ctx context.Context, surveyID uuid.UUID, identity Identity, req *dto.SubmitRequestDTO) error {
	survey, err := s.loadSurvey(ctx, s.DB, surveyID)
	if err != nil {
		return err
	}
	if err := s.checkAccess(ctx, s.DB, survey, identity, true); err != nil {
		var be *helper.BusinessError
		if errors.As(err, &be) {
			return nil
		}
		return err
	}
	column, value, ok := identity.dimension(survey)
	if !ok {
		return nil
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var draft responseModel.ResponseModel
		err := tx.Where("response_survey_id = ? AND response_status = ? AND "+column+" = ?",
			surveyID, responseModel.ResponseStatusDraft, value).
			First(&draft).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			draft = responseModel.ResponseModel{
				ResponseSurveyID: surveyID,
				ResponseUserID:   identity.UserID,
				ResponseDeviceID: identity.deviceID(),
				ResponseStatus:   responseModel.ResponseStatusDraft,
			}
			if err := tx.Create(&draft).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Where("response_item_response_id = ?", draft.ResponseID).
				Delete(&responseModel.ResponseItemModel{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&responseModel.ResponseModel{}).
				Where("response_id = ?", draft.ResponseID).
				Update("response_updated_at", time.Now()).Error; err != nil {
				return err
			}
		}
		return insertItems(tx, draft.ResponseID, req.Items)
	})
}

// GetDraft mengembalikan draft milik identitas ini, atau nil bila tidak ada.
func (s *FillService) GetDraft(ctx context.Context, surveyID uuid.UUID, identity Identity) (*dto.DraftVO, error) {
	survey, err := s.loadSurvey(ctx, s.DB, surveyID)
	if err != nil {
		return nil, err
	}
	column, value, ok := identity.dimension(survey)
	if !ok {
		return nil, nil
	}
	var draft responseModel.ResponseModel
	err = s.DB.WithContext(ctx).
		Where("response_survey_id = ? AND response_status = ? AND "+column+" = ?",
			surveyID, responseModel.ResponseStatusDraft, value).
		First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []responseModel.ResponseItemModel
	if err := s.DB.WithContext(ctx).
		Where("response_item_response_id = ?", draft.ResponseID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return dto.NewDraftVO(&draft, items), nil
}

/* =========================================================
   Submit
========================================================= */

// Submit memfinalkan jawaban. Urutan di dalam transaksi: gate penuh,
// rate limit IP/perangkat, validasi isi, lalu promosi draft (atau insert
// baris SUBMITTED baru) dan penggantian item.
func (s *FillService) Submit(ctx context.Context, surveyID uuid.UUID, identity Identity, clientIP string, req *dto.SubmitRequestDTO) (*dto.SubmitResultVO, error) {
	var result *dto.SubmitResultVO

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		survey, err := s.loadSurvey(ctx, tx, surveyID)
		if err != nil {
			return err
		}
		if err := s.checkAccess(ctx, tx, survey, identity, false); err != nil {
			return err
		}
		if err := s.checkRateLimits(ctx, tx, survey, identity, clientIP); err != nil {
			return err
		}

		questions, err := s.loadQuestions(ctx, tx, surveyID)
		if err != nil {
			return err
		}
		if err := validateSubmitItems(req.Items, questions); err != nil {
			return err
		}

		now := time.Now()
		row, err := s.resolveSubmitRow(tx, survey, identity)
		if err != nil {
			return err
		}
		row.ResponseStatus = responseModel.ResponseStatusSubmitted
		row.ResponseSubmittedAt = &now
		row.ResponseDurationSeconds = req.DurationSeconds
		if clientIP != "" {
			row.ResponseSubmittedIP = &clientIP
		}
		if row.ResponseID == uuid.Nil {
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("response_item_response_id = ?", row.ResponseID).
				Delete(&responseModel.ResponseItemModel{}).Error; err != nil {
				return err
			}
			if err := tx.Save(row).Error; err != nil {
				return err
			}
		}
		if err := insertItems(tx, row.ResponseID, req.Items); err != nil {
			return err
		}

		result = &dto.SubmitResultVO{
			ResponseID:   row.ResponseID,
			SubmittedAt:  now,
			ThankYouText: survey.SurveyThankYouText,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// resolveSubmitRow mencari row milik dimensi ini untuk ditulis: draft yang
// akan dipromosikan, atau row SUBMITTED lama yang ditimpa ulang (satu row per
// dimensi, submit berikutnya mengganti isi row yang sama). Tanpa keduanya
// (atau tanpa dimensi identitas) dikembalikan row baru. Kolom identitas yang
// belum terisi pada row lama dilengkapi dari identitas pemanggil.
func (s *FillService) resolveSubmitRow(tx *gorm.DB, survey *surveyModel.SurveyModel, identity Identity) (*responseModel.ResponseModel, error) {
	fresh := &responseModel.ResponseModel{
		ResponseSurveyID: survey.SurveyID,
		ResponseUserID:   identity.UserID,
		ResponseDeviceID: identity.deviceID(),
	}

	column, value, ok := identity.dimension(survey)
	if !ok {
		return fresh, nil
	}
	var row responseModel.ResponseModel
	err := tx.Where("response_survey_id = ? AND "+column+" = ?", survey.SurveyID, value).
		Order("response_status ASC"). // DRAFT sebelum SUBMITTED
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fresh, nil
	}
	if err != nil {
		return nil, err
	}
	if row.ResponseUserID == nil {
		row.ResponseUserID = identity.UserID
	}
	if row.ResponseDeviceID == nil {
		row.ResponseDeviceID = identity.deviceID()
	}
	return &row, nil
}

// checkRateLimits menghitung baris SUBMITTED per IP dan per perangkat
// terhadap batas survei. 0 = tanpa batas. Hanya dievaluasi saat submit.
func (s *FillService) checkRateLimits(ctx context.Context, tx *gorm.DB, survey *surveyModel.SurveyModel, identity Identity, clientIP string) error {
	if survey.SurveyLimitByIP > 0 && clientIP != "" {
		var count int64
		if err := tx.WithContext(ctx).
			Model(&responseModel.ResponseModel{}).
			Where("response_survey_id = ? AND response_status = ? AND response_submitted_ip = ?",
				survey.SurveyID, responseModel.ResponseStatusSubmitted, clientIP).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(survey.SurveyLimitByIP) {
			return helper.ErrSurveyIPLimit
		}
	}
	if survey.SurveyLimitByDevice > 0 && identity.DeviceID != nil && *identity.DeviceID != "" {
		var count int64
		if err := tx.WithContext(ctx).
			Model(&responseModel.ResponseModel{}).
			Where("response_survey_id = ? AND response_status = ? AND response_device_id = ?",
				survey.SurveyID, responseModel.ResponseStatusSubmitted, *identity.DeviceID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(survey.SurveyLimitByDevice) {
			return helper.ErrSurveyDeviceLimit
		}
	}
	return nil
}

// insertItems membangun dan menyimpan item jawaban. Item kosong dilewati.
func insertItems(tx *gorm.DB, responseID uuid.UUID, items []dto.SubmitItemDTO) error {
	rows := make([]*responseModel.ResponseItemModel, 0, len(items))
	for i := range items {
		item := &items[i]
		row := responseModel.BuildResponseItem(responseID, item.QuestionID,
			item.OptionIndex, item.OptionIndices, item.TextValue, item.ScaleValue)
		if row != nil {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}
