// file: internals/features/surveys/service/question_service.go
package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	permModel "surveyku_backend/internals/features/permissions/model"
	dto "surveyku_backend/internals/features/surveys/dto"
	model "surveyku_backend/internals/features/surveys/model"
	helper "surveyku_backend/internals/helpers"
)

/* =========================================================
   Penyusunan pertanyaan. sort_order dijaga rapat 0..n-1:
   add menambah di ekor, copy menyisip setelah sumber sambil
   menggeser ekor, delete menomori ulang sisanya, reorder
   menulis ulang seluruh urutan.
========================================================= */

func (s *SurveyService) requireEditableSurvey(ctx context.Context, surveyID, userID uuid.UUID) (*model.SurveyModel, error) {
	survey, err := s.requireSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequirePermission(ctx, &userID, permModel.ResourceSurvey, survey, permModel.ActionEdit); err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *SurveyService) requireQuestion(ctx context.Context, db *gorm.DB, surveyID, questionID uuid.UUID) (*model.SurveyQuestionModel, error) {
	var q model.SurveyQuestionModel
	err := db.WithContext(ctx).
		Where("survey_question_survey_id = ? AND survey_question_id = ?", surveyID, questionID).
		First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *SurveyService) ListQuestions(ctx context.Context, surveyID, userID uuid.UUID) ([]dto.QuestionVO, error) {
	if _, err := s.requireEditableSurvey(ctx, surveyID, userID); err != nil {
		return nil, err
	}
	questions, err := s.listQuestions(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return dto.NewQuestionVOs(questions), nil
}

func (s *SurveyService) AddQuestion(ctx context.Context, surveyID, userID uuid.UUID, req *dto.UpsertQuestionRequest) (*dto.QuestionVO, error) {
	if _, err := s.requireEditableSurvey(ctx, surveyID, userID); err != nil {
		return nil, err
	}
	q := &model.SurveyQuestionModel{
		SurveyQuestionSurveyID: surveyID,
		SurveyQuestionType:     req.Type,
		SurveyQuestionTitle:    req.Title,
		SurveyQuestionDesc:     req.Desc,
		SurveyQuestionRequired: req.Required,
		SurveyQuestionConfig:   req.Config,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxOrder sql.NullInt64
		if err := tx.Model(&model.SurveyQuestionModel{}).
			Where("survey_question_survey_id = ?", surveyID).
			Select("MAX(survey_question_sort_order)").
			Scan(&maxOrder).Error; err != nil {
			return err
		}
		if maxOrder.Valid {
			q.SurveyQuestionSortOrder = int(maxOrder.Int64) + 1
		}
		return tx.Create(q).Error
	})
	if err != nil {
		return nil, err
	}
	vo := dto.NewQuestionVO(q)
	return &vo, nil
}

func (s *SurveyService) UpdateQuestion(ctx context.Context, surveyID, questionID, userID uuid.UUID, req *dto.UpsertQuestionRequest) error {
	if _, err := s.requireEditableSurvey(ctx, surveyID, userID); err != nil {
		return err
	}
	q, err := s.requireQuestion(ctx, s.DB, surveyID, questionID)
	if err != nil {
		return err
	}
	if req.Type != "" {
		q.SurveyQuestionType = req.Type
	}
	if req.Title != "" {
		q.SurveyQuestionTitle = req.Title
	}
	if req.Desc != nil {
		q.SurveyQuestionDesc = req.Desc
	}
	q.SurveyQuestionRequired = req.Required
	if req.Config != nil {
		q.SurveyQuestionConfig = req.Config
	}
	return s.DB.WithContext(ctx).Save(q).Error
}

// ReorderQuestions menulis ulang sort_order 0..n-1 sesuai urutan id yang
// dikirim. Id yang bukan milik survei ini dilewati.
func (s *SurveyService) ReorderQuestions(ctx context.Context, surveyID, userID uuid.UUID, questionIDs []uuid.UUID) error {
	if _, err := s.requireEditableSurvey(ctx, surveyID, userID); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := 0
		for _, id := range questionIDs {
			res := tx.Model(&model.SurveyQuestionModel{}).
				Where("survey_question_survey_id = ? AND survey_question_id = ?", surveyID, id).
				Update("survey_question_sort_order", order)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				order++
			}
		}
		return nil
	})
}

// CopyQuestion menyisipkan salinan tepat setelah sumbernya; pertanyaan di
// belakangnya bergeser satu posisi.
func (s *SurveyService) CopyQuestion(ctx context.Context, surveyID, questionID, userID uuid.UUID) (*dto.QuestionVO, error) {
	if _, err := s.requireEditableSurvey(ctx, surveyID, userID); err != nil {
		return nil, err
	}
	var dup model.SurveyQuestionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		src, err := s.requireQuestion(ctx, tx, surveyID, questionID)
		if err != nil {
			return err
		}
		if err := tx.Model(&model.SurveyQuestionModel{}).
			Where("survey_question_survey_id = ? AND survey_question_sort_order > ?", surveyID, src.SurveyQuestionSortOrder).
			Update("survey_question_sort_order", gorm.Expr("survey_question_sort_order + 1")).Error; err != nil {
			return err
		}
		dup = model.SurveyQuestionModel{
			SurveyQuestionSurveyID:  surveyID,
			SurveyQuestionType:      src.SurveyQuestionType,
			SurveyQuestionTitle:     src.SurveyQuestionTitle,
			SurveyQuestionDesc:      src.SurveyQuestionDesc,
			SurveyQuestionRequired:  src.SurveyQuestionRequired,
			SurveyQuestionSortOrder: src.SurveyQuestionSortOrder + 1,
			SurveyQuestionConfig:    src.SurveyQuestionConfig,
		}
		return tx.Create(&dup).Error
	})
	if err != nil {
		return nil, err
	}
	vo := dto.NewQuestionVO(&dup)
	return &vo, nil
}

// DeleteQuestion menghapus lalu menomori ulang sisanya supaya tetap rapat.
func (s *SurveyService) DeleteQuestion(ctx context.Context, surveyID, questionID, userID uuid.UUID) error {
	if _, err := s.requireEditableSurvey(ctx, surveyID, userID); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.requireQuestion(ctx, tx, surveyID, questionID); err != nil {
			return err
		}
		if err := tx.Where("survey_question_survey_id = ? AND survey_question_id = ?", surveyID, questionID).
			Delete(&model.SurveyQuestionModel{}).Error; err != nil {
			return err
		}
		var rest []model.SurveyQuestionModel
		if err := tx.Where("survey_question_survey_id = ?", surveyID).
			Order("survey_question_sort_order ASC").
			Find(&rest).Error; err != nil {
			return err
		}
		for i := range rest {
			if rest[i].SurveyQuestionSortOrder == i {
				continue
			}
			if err := tx.Model(&model.SurveyQuestionModel{}).
				Where("survey_question_id = ?", rest[i].SurveyQuestionID).
				Update("survey_question_sort_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
