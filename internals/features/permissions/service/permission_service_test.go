package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	permModel "surveyku_backend/internals/features/permissions/model"
	surveyModel "surveyku_backend/internals/features/surveys/model"
	userModel "surveyku_backend/internals/features/users/model"
	helper "surveyku_backend/internals/helpers"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.DepartmentModel{},
		&userModel.UserModel{},
		&permModel.RoleModel{},
		&permModel.PermissionModel{},
		&permModel.RolePermissionModel{},
		&permModel.UserRoleModel{},
		&surveyModel.SurveyModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, deptID *uuid.UUID) uuid.UUID {
	t.Helper()
	u := &userModel.UserModel{UserName: "tester", UserDepartmentID: deptID}
	require.NoError(t, db.Create(u).Error)
	return u.UserID
}

func seedDepartment(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	d := &userModel.DepartmentModel{DepartmentName: name}
	require.NoError(t, db.Create(d).Error)
	return d.DepartmentID
}

// grantScope rangkai role -> permission -> user untuk satu scope.
func grantScope(t *testing.T, db *gorm.DB, userID uuid.UUID, resource, action string, scope permModel.DataScope) {
	t.Helper()
	role := &permModel.RoleModel{RoleName: "role-" + uuid.NewString()[:8]}
	require.NoError(t, db.Create(role).Error)
	perm := &permModel.PermissionModel{
		PermissionName:         resource + ":" + action,
		PermissionResourceType: resource,
		PermissionAction:       action,
		PermissionDataScope:    scope,
	}
	require.NoError(t, db.Create(perm).Error)
	require.NoError(t, db.Create(&permModel.RolePermissionModel{
		RolePermissionRoleID:       role.RoleID,
		RolePermissionPermissionID: perm.PermissionID,
	}).Error)
	require.NoError(t, db.Create(&permModel.UserRoleModel{
		UserRoleUserID: userID,
		UserRoleRoleID: role.RoleID,
	}).Error)
}

func newSurvey(creatorID uuid.UUID, deptID *uuid.UUID) *surveyModel.SurveyModel {
	return &surveyModel.SurveyModel{
		SurveyID:           uuid.New(),
		SurveyTitle:        "Survei",
		SurveyStatus:       surveyModel.SurveyStatusDraft,
		SurveyCreatorID:    creatorID,
		SurveyDepartmentID: deptID,
	}
}

/* =========================================================
   Filter list
========================================================= */

func TestListFilterNoLoginNoAccess(t *testing.T) {
	svc := NewPermissionService(setupTestDB(t))
	f, err := svc.GetSurveyViewListFilter(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, f.IsNoAccess())
}

func TestListFilterNoPermissionNoAccess(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db)
	userID := seedUser(t, db, nil)

	f, err := svc.GetSurveyViewListFilter(context.Background(), &userID)
	require.NoError(t, err)
	assert.True(t, f.IsNoAccess())
}

func TestListFilterSchoolAllowsAll(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db)
	userID := seedUser(t, db, nil)
	grantScope(t, db, userID, permModel.ResourceSurvey, permModel.ActionView, permModel.ScopeSchool)
	// scope lain ikut tergabung tapi SCHOOL menang
	grantScope(t, db, userID, permModel.ResourceSurvey, permModel.ActionView, permModel.ScopeSelf)

	f, err := svc.GetSurveyViewListFilter(context.Background(), &userID)
	require.NoError(t, err)
	assert.True(t, f.AllowAll)
	assert.Nil(t, f.CreatorID)
}

func TestListFilterSelfPlusDepartmentIsUnion(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db)
	deptID := seedDepartment(t, db, "Kurikulum")
	userID := seedUser(t, db, &deptID)
	grantScope(t, db, userID, permModel.ResourceSurvey, permModel.ActionView, permModel.ScopeSelf)
	grantScope(t, db, userID, permModel.ResourceSurvey, permModel.ActionView, permModel.ScopeDepartment)

	f, err := svc.GetSurveyViewListFilter(context.Background(), &userID)
	require.NoError(t, err)
	assert.False(t, f.AllowAll)
	require.NotNil(t, f.CreatorID)
	assert.Equal(t, userID, *f.CreatorID)
	require.NotNil(t, f.DepartmentID)
	assert.Equal(t, deptID, *f.DepartmentID)
}

func TestListFilterDepartmentScopeWithoutDepartment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db)
	userID := seedUser(t, db, nil)
	grantScope(t, db, userID, permModel.ResourceSurvey, permModel.ActionView, permModel.ScopeDepartment)

	// user tanpa departemen: scope DEPARTMENT tidak memberi apa-apa
	f, err := svc.GetSurveyViewListFilter(context.Background(), &userID)
	require.NoError(t, err)
	assert.True(t, f.IsNoAccess())
}

/* =========================================================
   Gate per entitas
========================================================= */

func TestRequirePermissionCreateNeedsPossessionOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db)
	ctx := context.Background()
	userID := seedUser(t, db, nil)

	err := svc.RequirePermission(ctx, &userID, permModel.ResourceSurvey, nil, permModel.ActionCreate)
	assert.ErrorIs(t, err, helper.ErrForbidden)

	grantScope(t, db, userID, permModel.ResourceSurvey, permModel.ActionCreate, permModel.ScopeSelf)
	err = svc.RequirePermission(ctx, &userID, permModel.ResourceSurvey, nil, permModel.ActionCreate)
	assert.NoError(t, err)
}

func TestRequirePermissionNilSurveyOnlyValidForCreate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db)
	userID := seedUser(t, db, nil)
	grantScope(t, db, userID, permModel.ResourceSurvey, permModel.ActionEdit, permModel.ScopeSchool)

	err := svc.RequirePermission(context.Background(), &userID, permModel.ResourceSurvey, nil, permModel.ActionEdit)
	assert.ErrorIs(t, err, helper.ErrForbidden)
}

func TestRequirePermissionSelfScope(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db)
	ctx := context.Background()
	userID := seedUser(t, db, nil)
	grantScope(t, db, userID, permModel.ResourceSurvey, permModel.ActionEdit, permModel.ScopeSelf)

	own := newSurvey(userID, nil)
	assert.NoError(t, svc.RequirePermission(ctx, &userID, permModel.ResourceSurvey, own, permModel.ActionEdit))

	foreign := newSurvey(uuid.New(), nil)
	assert.ErrorIs(t, svc.RequirePermission(ctx, &userID, permModel.ResourceSurvey, foreign, permModel.ActionEdit), helper.ErrForbidden)
}

func TestRequirePermissionDepartmentScope(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db)
	ctx := context.Background()
	deptID := seedDepartment(t, db, "Kesiswaan")
	otherDept := seedDepartment(t, db, "Humas")
	userID := seedUser(t, db, &deptID)
	grantScope(t, db, userID, permModel.ResourceSurvey, permModel.ActionView, permModel.ScopeDepartment)

	sameDept := newSurvey(uuid.New(), &deptID)
	assert.NoError(t, svc.RequirePermission(ctx, &userID, permModel.ResourceSurvey, sameDept, permModel.ActionView))

	beda := newSurvey(uuid.New(), &otherDept)
	assert.ErrorIs(t, svc.RequirePermission(ctx, &userID, permModel.ResourceSurvey, beda, permModel.ActionView), helper.ErrForbidden)

	// survei tanpa departemen tidak pernah cocok lewat scope DEPARTMENT
	tanpaDept := newSurvey(uuid.New(), nil)
	assert.ErrorIs(t, svc.RequirePermission(ctx, &userID, permModel.ResourceSurvey, tanpaDept, permModel.ActionView), helper.ErrForbidden)
}

func TestRequirePermissionDepartmentPlusSelfFallback(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db)
	ctx := context.Background()
	deptID := seedDepartment(t, db, "Sarpras")
	userID := seedUser(t, db, &deptID)
	grantScope(t, db, userID, permModel.ResourceSurvey, permModel.ActionView, permModel.ScopeDepartment)
	grantScope(t, db, userID, permModel.ResourceSurvey, permModel.ActionView, permModel.ScopeSelf)

	// survei sendiri tanpa departemen: lolos lewat SELF walau DEPARTMENT gagal
	own := newSurvey(userID, nil)
	assert.NoError(t, svc.RequirePermission(ctx, &userID, permModel.ResourceSurvey, own, permModel.ActionView))
}

func TestRequirePermissionSchoolScopeIgnoresOwnership(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db)
	userID := seedUser(t, db, nil)
	grantScope(t, db, userID, permModel.ResourceResponse, permModel.ActionExport, permModel.ScopeSchool)

	foreign := newSurvey(uuid.New(), nil)
	assert.NoError(t, svc.RequirePermission(context.Background(), &userID, permModel.ResourceResponse, foreign, permModel.ActionExport))
}

func TestRequirePermissionActionsAreIndependent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db)
	ctx := context.Background()
	userID := seedUser(t, db, nil)
	grantScope(t, db, userID, permModel.ResourceSurvey, permModel.ActionView, permModel.ScopeSchool)

	foreign := newSurvey(uuid.New(), nil)
	assert.NoError(t, svc.RequirePermission(ctx, &userID, permModel.ResourceSurvey, foreign, permModel.ActionView))
	assert.ErrorIs(t, svc.RequirePermission(ctx, &userID, permModel.ResourceSurvey, foreign, permModel.ActionDelete), helper.ErrForbidden)
}

func TestRequirePermissionNoLogin(t *testing.T) {
	svc := NewPermissionService(setupTestDB(t))
	err := svc.RequirePermission(context.Background(), nil, permModel.ResourceSurvey, newSurvey(uuid.New(), nil), permModel.ActionView)
	assert.ErrorIs(t, err, helper.ErrForbidden)
}
