// file: internals/features/permissions/service/permission_service.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	permModel "surveyku_backend/internals/features/permissions/model"
	surveyModel "surveyku_backend/internals/features/surveys/model"
	userModel "surveyku_backend/internals/features/users/model"
	helper "surveyku_backend/internals/helpers"
)

type PermissionService struct {
	DB *gorm.DB
}

func NewPermissionService(db *gorm.DB) *PermissionService {
	return &PermissionService{DB: db}
}

/* =========================================================
   Filter list survei berdasarkan data scope (survey/view).
========================================================= */

// SurveyListFilter: hasil resolve scope menjadi filter konkret.
// AllowAll=false + dua field nil = tanpa akses sama sekali.
// CreatorID dan DepartmentID terisi dua-duanya berarti OR, bukan AND.
type SurveyListFilter struct {
	AllowAll     bool
	CreatorID    *uuid.UUID
	DepartmentID *uuid.UUID
}

func (f SurveyListFilter) IsNoAccess() bool {
	return !f.AllowAll && f.CreatorID == nil && f.DepartmentID == nil
}

// dataScopesFor kumpulkan union data scope dari semua role user
// untuk satu pasangan (resource_type, action).
func (s *PermissionService) dataScopesFor(ctx context.Context, userID uuid.UUID, resourceType, action string) (map[permModel.DataScope]bool, error) {
	var rows []permModel.DataScope
	err := s.DB.WithContext(ctx).
		Table("permissions").
		Select("permissions.permission_data_scope").
		Joins("JOIN role_permissions ON role_permissions.role_permission_permission_id = permissions.permission_id").
		Joins("JOIN user_roles ON user_roles.user_role_role_id = role_permissions.role_permission_role_id").
		Where("user_roles.user_role_user_id = ?", userID).
		Where("permissions.permission_resource_type = ? AND permissions.permission_action = ?", resourceType, action).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	scopes := make(map[permModel.DataScope]bool, len(rows))
	for _, sc := range rows {
		scopes[sc] = true
	}
	return scopes, nil
}

func (s *PermissionService) userDepartmentID(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error) {
	var u userModel.UserModel
	err := s.DB.WithContext(ctx).
		Select("user_id", "user_department_id").
		Where("user_id = ?", userID).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return u.UserDepartmentID, nil
}

// GetSurveyViewListFilter resolve scope (survey, view) milik user jadi filter
// query list. SCHOOL → tanpa batas; SELF → creator sendiri; DEPARTMENT →
// departemen user (hanya bila user punya departemen). Tidak ada yang
// berkontribusi → tanpa akses.
func (s *PermissionService) GetSurveyViewListFilter(ctx context.Context, userID *uuid.UUID) (SurveyListFilter, error) {
	if userID == nil {
		return SurveyListFilter{}, nil
	}
	scopes, err := s.dataScopesFor(ctx, *userID, permModel.ResourceSurvey, permModel.ActionView)
	if err != nil {
		return SurveyListFilter{}, err
	}
	if len(scopes) == 0 {
		return SurveyListFilter{}, nil
	}
	if scopes[permModel.ScopeSchool] {
		return SurveyListFilter{AllowAll: true}, nil
	}

	f := SurveyListFilter{}
	if scopes[permModel.ScopeSelf] {
		id := *userID
		f.CreatorID = &id
	}
	if scopes[permModel.ScopeDepartment] {
		deptID, err := s.userDepartmentID(ctx, *userID)
		if err != nil {
			return SurveyListFilter{}, err
		}
		f.DepartmentID = deptID
	}
	return f, nil
}

/* =========================================================
   Gate per entitas.
========================================================= */

// RequirePermission cek otorisasi satu aksi.
//   - survey == nil hanya valid untuk (survey, create): cukup memegang
//     pasangan resource+action, scope tidak dicek.
//   - survey != nil: SCHOOL selalu lolos; DEPARTMENT lolos bila departemen
//     survei dan user sama-sama terisi dan sama; SELF lolos bila creator.
//
// Resource "response" tetap diotorisasi terhadap survei pemiliknya.
func (s *PermissionService) RequirePermission(ctx context.Context, userID *uuid.UUID, resourceType string, survey *surveyModel.SurveyModel, action string) error {
	if userID == nil {
		return helper.ErrForbidden
	}
	if survey == nil {
		if resourceType == permModel.ResourceSurvey && action == permModel.ActionCreate {
			scopes, err := s.dataScopesFor(ctx, *userID, resourceType, action)
			if err != nil {
				return err
			}
			if len(scopes) == 0 {
				return helper.ErrForbidden
			}
			return nil
		}
		return helper.ErrForbidden
	}

	scopes, err := s.dataScopesFor(ctx, *userID, resourceType, action)
	if err != nil {
		return err
	}
	if len(scopes) == 0 {
		return helper.ErrForbidden
	}
	if scopes[permModel.ScopeSchool] {
		return nil
	}
	if scopes[permModel.ScopeDepartment] && survey.SurveyDepartmentID != nil {
		deptID, err := s.userDepartmentID(ctx, *userID)
		if err != nil {
			return err
		}
		if deptID != nil && *deptID == *survey.SurveyDepartmentID {
			return nil
		}
	}
	if scopes[permModel.ScopeSelf] && survey.SurveyCreatorID == *userID {
		return nil
	}
	return helper.ErrForbidden
}

// RequireSchoolScope gate untuk fitur administrasi lintas survei (pustaka
// opsi preset). Hanya user yang memegang scope SCHOOL pada pasangan
// resource+action yang boleh lewat.
func (s *PermissionService) RequireSchoolScope(ctx context.Context, userID *uuid.UUID, resourceType, action string) error {
	if userID == nil {
		return helper.ErrUnauthorized
	}
	scopes, err := s.dataScopesFor(ctx, *userID, resourceType, action)
	if err != nil {
		return err
	}
	if !scopes[permModel.ScopeSchool] {
		return helper.ErrForbidden
	}
	return nil
}
