// file: internals/features/surveys/service/survey_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	permModel "surveyku_backend/internals/features/permissions/model"
	permService "surveyku_backend/internals/features/permissions/service"
	responseModel "surveyku_backend/internals/features/responses/model"
	dto "surveyku_backend/internals/features/surveys/dto"
	model "surveyku_backend/internals/features/surveys/model"
	"surveyku_backend/internals/features/surveys/schema"
	userModel "surveyku_backend/internals/features/users/model"
	helper "surveyku_backend/internals/helpers"
)

/* =========================================================
   SurveyService: CRUD + siklus hidup survei untuk admin.
   Semua operasi lewat gate permission dengan action yang sesuai.
========================================================= */

type SurveyService struct {
	DB   *gorm.DB
	Perm *permService.PermissionService
}

func NewSurveyService(db *gorm.DB) *SurveyService {
	return &SurveyService{DB: db, Perm: permService.NewPermissionService(db)}
}

func (s *SurveyService) requireSurvey(ctx context.Context, id uuid.UUID) (*model.SurveyModel, error) {
	var survey model.SurveyModel
	if err := s.DB.WithContext(ctx).First(&survey, "survey_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrSurveyNotFound
		}
		return nil, err
	}
	return &survey, nil
}

func (s *SurveyService) listQuestions(ctx context.Context, surveyID uuid.UUID) ([]model.SurveyQuestionModel, error) {
	var questions []model.SurveyQuestionModel
	if err := s.DB.WithContext(ctx).
		Where("survey_question_survey_id = ?", surveyID).
		Order("survey_question_sort_order ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

/* =========================================================
   Create / List / Detail / Update
========================================================= */

func (s *SurveyService) Create(ctx context.Context, creatorID uuid.UUID, req *dto.CreateSurveyRequest) (*model.SurveyModel, error) {
	if err := s.Perm.RequirePermission(ctx, &creatorID, permModel.ResourceSurvey, nil, permModel.ActionCreate); err != nil {
		return nil, err
	}
	title := req.Title
	if title == "" {
		title = "Survei tanpa judul"
	}
	survey := &model.SurveyModel{
		SurveyTitle:            title,
		SurveyDescription:      req.Description,
		SurveyStatus:           model.SurveyStatusDraft,
		SurveyCreatorID:        creatorID,
		SurveyLimitOncePerUser: true,
		SurveyAllowAnonymous:   false,
	}
	// departemen pemilik dibekukan dari departemen creator saat ini
	var creator userModel.UserModel
	if err := s.DB.WithContext(ctx).First(&creator, "user_id = ?", creatorID).Error; err == nil {
		survey.SurveyDepartmentID = creator.UserDepartmentID
	}
	if err := s.DB.WithContext(ctx).Create(survey).Error; err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *SurveyService) List(ctx context.Context, userID uuid.UUID, q *dto.ListSurveysQuery) ([]dto.SurveyListItemVO, int64, error) {
	db := s.DB.WithContext(ctx).Model(&model.SurveyModel{})

	if q.OnlyMine {
		db = db.Where("survey_creator_id = ?", userID)
	} else {
		filter, err := s.Perm.GetSurveyViewListFilter(ctx, &userID)
		if err != nil {
			return nil, 0, err
		}
		switch {
		case filter.AllowAll:
			// seluruh sekolah, tanpa filter
		case filter.IsNoAccess():
			return []dto.SurveyListItemVO{}, 0, nil
		case filter.CreatorID != nil && filter.DepartmentID != nil:
			db = db.Where("survey_creator_id = ? OR survey_department_id = ?", *filter.CreatorID, *filter.DepartmentID)
		case filter.CreatorID != nil:
			db = db.Where("survey_creator_id = ?", *filter.CreatorID)
		default:
			db = db.Where("survey_department_id = ?", *filter.DepartmentID)
		}
	}

	if q.Status != "" && q.Status != "all" {
		db = db.Where("survey_status = ?", q.Status)
	}
	if q.Keyword != "" {
		db = db.Where("survey_title ILIKE ?", "%"+q.Keyword+"%")
	}
	db = db.Session(&gorm.Session{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderCol := "survey_updated_at"
	if q.SortBy == "created_at" {
		orderCol = "survey_created_at"
	}
	var surveys []model.SurveyModel
	if err := db.Order(orderCol + " DESC").
		Offset((q.Page - 1) * q.PerPage).
		Limit(q.PerPage).
		Find(&surveys).Error; err != nil {
		return nil, 0, err
	}

	counts, err := s.submittedCounts(ctx, surveys)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.SurveyListItemVO, 0, len(surveys))
	for i := range surveys {
		sv := &surveys[i]
		items = append(items, dto.SurveyListItemVO{
			SurveyID:      sv.SurveyID,
			Title:         sv.SurveyTitle,
			Status:        sv.SurveyStatus,
			CreatorID:     sv.SurveyCreatorID,
			DepartmentID:  sv.SurveyDepartmentID,
			StartTime:     sv.SurveyStartTime,
			EndTime:       sv.SurveyEndTime,
			ResponseCount: counts[sv.SurveyID],
			CreatedAt:     sv.SurveyCreatedAt,
			UpdatedAt:     sv.SurveyUpdatedAt,
		})
	}
	return items, total, nil
}

// submittedCounts hitung jumlah SUBMITTED per survei dalam satu query.
func (s *SurveyService) submittedCounts(ctx context.Context, surveys []model.SurveyModel) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(surveys))
	if len(surveys) == 0 {
		return counts, nil
	}
	ids := make([]uuid.UUID, 0, len(surveys))
	for i := range surveys {
		ids = append(ids, surveys[i].SurveyID)
	}
	type row struct {
		SurveyID uuid.UUID `gorm:"column:survey_id"`
		Total    int64     `gorm:"column:total"`
	}
	var rows []row
	if err := s.DB.WithContext(ctx).
		Model(&responseModel.ResponseModel{}).
		Select("response_survey_id AS survey_id, COUNT(*) AS total").
		Where("response_survey_id IN ? AND response_status = ?", ids, responseModel.ResponseStatusSubmitted).
		Group("response_survey_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.SurveyID] = r.Total
	}
	return counts, nil
}

func (s *SurveyService) GetDetail(ctx context.Context, surveyID, userID uuid.UUID) (*dto.SurveyDetailVO, error) {
	survey, err := s.requireSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequirePermission(ctx, &userID, permModel.ResourceSurvey, survey, permModel.ActionView); err != nil {
		return nil, err
	}
	questions, err := s.listQuestions(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return dto.NewSurveyDetailVO(survey, questions), nil
}

func (s *SurveyService) UpdateBasic(ctx context.Context, surveyID, userID uuid.UUID, req *dto.UpdateSurveyBasicRequest) error {
	survey, err := s.requireSurvey(ctx, surveyID)
	if err != nil {
		return err
	}
	if err := s.Perm.RequirePermission(ctx, &userID, permModel.ResourceSurvey, survey, permModel.ActionEdit); err != nil {
		return err
	}
	if req.Title != nil {
		survey.SurveyTitle = *req.Title
	}
	if req.Description != nil {
		survey.SurveyDescription = req.Description
	}
	return s.DB.WithContext(ctx).Save(survey).Error
}

func (s *SurveyService) UpdateSettings(ctx context.Context, surveyID, userID uuid.UUID, req *dto.UpdateSurveySettingsRequest) error {
	survey, err := s.requireSurvey(ctx, surveyID)
	if err != nil {
		return err
	}
	if err := s.Perm.RequirePermission(ctx, &userID, permModel.ResourceSurvey, survey, permModel.ActionEdit); err != nil {
		return err
	}
	if req.LimitOncePerUser != nil {
		survey.SurveyLimitOncePerUser = *req.LimitOncePerUser
	}
	if req.AllowAnonymous != nil {
		survey.SurveyAllowAnonymous = *req.AllowAnonymous
	}
	if req.LimitByIP != nil {
		survey.SurveyLimitByIP = *req.LimitByIP
	}
	if req.LimitByDevice != nil {
		survey.SurveyLimitByDevice = *req.LimitByDevice
	}
	if req.StartTime != nil {
		survey.SurveyStartTime = req.StartTime
	}
	if req.EndTime != nil {
		survey.SurveyEndTime = req.EndTime
	}
	if req.ThankYouText != nil {
		survey.SurveyThankYouText = req.ThankYouText
	}
	return s.DB.WithContext(ctx).Save(survey).Error
}

/* =========================================================
   Siklus hidup
========================================================= */

// Publish: DRAFT -> COLLECTING, setelah survei lolos cek kelayakan
// (punya pertanyaan, semua berjudul, soal pilihan punya opsi).
func (s *SurveyService) Publish(ctx context.Context, surveyID, userID uuid.UUID) error {
	survey, err := s.requireSurvey(ctx, surveyID)
	if err != nil {
		return err
	}
	if err := s.Perm.RequirePermission(ctx, &userID, permModel.ResourceSurvey, survey, permModel.ActionPublish); err != nil {
		return err
	}
	if survey.SurveyStatus != model.SurveyStatusDraft {
		return helper.ErrParamError
	}
	questions, err := s.listQuestions(ctx, surveyID)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return helper.PublishValidationError("Tambahkan minimal satu pertanyaan")
	}
	for i := range questions {
		q := &questions[i]
		if q.SurveyQuestionTitle == "" {
			return helper.PublishValidationError(fmt.Sprintf("Isi judul pertanyaan (pertanyaan %d)", q.SurveyQuestionSortOrder+1))
		}
		if q.IsChoice() {
			cfg := schema.ParseQuestionConfig(q.SurveyQuestionType, q.SurveyQuestionConfig)
			if len(cfg.Choice.Options) == 0 {
				return helper.PublishValidationError("Soal pilihan butuh minimal satu opsi (pertanyaan: " + q.SurveyQuestionTitle + ")")
			}
		}
	}
	survey.SurveyStatus = model.SurveyStatusCollecting
	return s.DB.WithContext(ctx).Save(survey).Error
}

// Pause: COLLECTING -> PAUSED.
func (s *SurveyService) Pause(ctx context.Context, surveyID, userID uuid.UUID) error {
	return s.transition(ctx, surveyID, userID, model.SurveyStatusCollecting, model.SurveyStatusPaused)
}

// Resume: PAUSED -> COLLECTING.
func (s *SurveyService) Resume(ctx context.Context, surveyID, userID uuid.UUID) error {
	return s.transition(ctx, surveyID, userID, model.SurveyStatusPaused, model.SurveyStatusCollecting)
}

func (s *SurveyService) transition(ctx context.Context, surveyID, userID uuid.UUID, from, to model.SurveyStatus) error {
	survey, err := s.requireSurvey(ctx, surveyID)
	if err != nil {
		return err
	}
	if err := s.Perm.RequirePermission(ctx, &userID, permModel.ResourceSurvey, survey, permModel.ActionPublish); err != nil {
		return err
	}
	if survey.SurveyStatus != from {
		return helper.ErrParamError
	}
	survey.SurveyStatus = to
	return s.DB.WithContext(ctx).Save(survey).Error
}

// End: status apa pun -> ENDED, idempoten.
func (s *SurveyService) End(ctx context.Context, surveyID, userID uuid.UUID) error {
	survey, err := s.requireSurvey(ctx, surveyID)
	if err != nil {
		return err
	}
	if err := s.Perm.RequirePermission(ctx, &userID, permModel.ResourceSurvey, survey, permModel.ActionPublish); err != nil {
		return err
	}
	if survey.SurveyStatus == model.SurveyStatusEnded {
		return nil
	}
	survey.SurveyStatus = model.SurveyStatusEnded
	return s.DB.WithContext(ctx).Save(survey).Error
}

/* =========================================================
   Copy / Delete
========================================================= */

// Copy: duplikat survei sebagai DRAFT milik pemanggil, pertanyaan ikut
// disalin. Cukup izin view pada survei sumber.
func (s *SurveyService) Copy(ctx context.Context, surveyID, userID uuid.UUID) (*model.SurveyModel, error) {
	src, err := s.requireSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequirePermission(ctx, &userID, permModel.ResourceSurvey, src, permModel.ActionView); err != nil {
		return nil, err
	}
	questions, err := s.listQuestions(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	dup := &model.SurveyModel{
		SurveyTitle:            src.SurveyTitle + " (salinan)",
		SurveyDescription:      src.SurveyDescription,
		SurveyStatus:           model.SurveyStatusDraft,
		SurveyCreatorID:        userID,
		SurveyLimitOncePerUser: src.SurveyLimitOncePerUser,
		SurveyAllowAnonymous:   src.SurveyAllowAnonymous,
		SurveyLimitByIP:        src.SurveyLimitByIP,
		SurveyLimitByDevice:    src.SurveyLimitByDevice,
		SurveyStartTime:        src.SurveyStartTime,
		SurveyEndTime:          src.SurveyEndTime,
		SurveyThankYouText:     src.SurveyThankYouText,
	}
	var caller userModel.UserModel
	if err := s.DB.WithContext(ctx).First(&caller, "user_id = ?", userID).Error; err == nil {
		dup.SurveyDepartmentID = caller.UserDepartmentID
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dup).Error; err != nil {
			return err
		}
		for i := range questions {
			q := &questions[i]
			nq := model.SurveyQuestionModel{
				SurveyQuestionSurveyID:  dup.SurveyID,
				SurveyQuestionType:      q.SurveyQuestionType,
				SurveyQuestionTitle:     q.SurveyQuestionTitle,
				SurveyQuestionDesc:      q.SurveyQuestionDesc,
				SurveyQuestionRequired:  q.SurveyQuestionRequired,
				SurveyQuestionSortOrder: q.SurveyQuestionSortOrder,
				SurveyQuestionConfig:    q.SurveyQuestionConfig,
			}
			if err := tx.Create(&nq).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dup, nil
}

// Delete menghapus survei beserta pertanyaan dan jawabannya.
func (s *SurveyService) Delete(ctx context.Context, surveyID, userID uuid.UUID) error {
	survey, err := s.requireSurvey(ctx, surveyID)
	if err != nil {
		return err
	}
	if err := s.Perm.RequirePermission(ctx, &userID, permModel.ResourceSurvey, survey, permModel.ActionDelete); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM response_items WHERE response_item_response_id IN (SELECT response_id FROM responses WHERE response_survey_id = ?)",
			surveyID).Error; err != nil {
			return err
		}
		if err := tx.Where("response_survey_id = ?", surveyID).
			Delete(&responseModel.ResponseModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_question_survey_id = ?", surveyID).
			Delete(&model.SurveyQuestionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SurveyModel{}, "survey_id = ?", surveyID).Error
	})
}
