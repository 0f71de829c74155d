// file: internals/features/surveys/controller/preset_option_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	permService "surveyku_backend/internals/features/permissions/service"
	dto "surveyku_backend/internals/features/surveys/dto"
	service "surveyku_backend/internals/features/surveys/service"
	helper "surveyku_backend/internals/helpers"
)

type PresetOptionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Service   *service.PresetOptionService
}

func NewPresetOptionController(db *gorm.DB) *PresetOptionController {
	return &PresetOptionController{
		DB:        db,
		Validator: validator.New(),
		Service:   service.NewPresetOptionService(db, permService.NewPermissionService(db)),
	}
}

func parsePresetGroupID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("group_id"))
	if err != nil {
		return uuid.Nil, helper.ErrParamError
	}
	return id, nil
}

func (ctl *PresetOptionController) callerID(c *fiber.Ctx) (uuid.UUID, error) {
	return helper.GetUserIDFromToken(c)
}

// QueryPresetGroups
// GET /api/a/preset-options?keyword=&category=&page=&per_page=
func (ctl *PresetOptionController) QueryPresetGroups(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)
	req := &dto.PresetQueryRequest{
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Category: strings.TrimSpace(c.Query("category")),
		Page:     paging.Page,
		PageSize: paging.PerPage,
	}
	list, total, err := ctl.Service.Query(c.Context(), &userID, req)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonList(c, "Berhasil mengambil grup opsi preset", list,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GetPresetGroupDetail
// GET /api/a/preset-options/:group_id
func (ctl *PresetOptionController) GetPresetGroupDetail(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	groupID, err := parsePresetGroupID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	vo, err := ctl.Service.GetDetail(c.Context(), &userID, groupID)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonOK(c, "Berhasil mengambil grup opsi preset", vo)
}

// CreatePresetGroup
// POST /api/a/preset-options
func (ctl *PresetOptionController) CreatePresetGroup(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	var req dto.UpsertPresetGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonBusinessError(c, helper.ErrParamError)
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonBusinessError(c, helper.ErrParamError)
	}
	vo, err := ctl.Service.Create(c.Context(), &userID, &req)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonCreated(c, "Grup opsi preset dibuat", vo)
}

// UpdatePresetGroup
// PUT /api/a/preset-options/:group_id
func (ctl *PresetOptionController) UpdatePresetGroup(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	groupID, err := parsePresetGroupID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	var req dto.UpsertPresetGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonBusinessError(c, helper.ErrParamError)
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonBusinessError(c, helper.ErrParamError)
	}
	vo, err := ctl.Service.Update(c.Context(), &userID, groupID, &req)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonUpdated(c, "Grup opsi preset diperbarui", vo)
}

// DeletePresetGroup
// DELETE /api/a/preset-options/:group_id
func (ctl *PresetOptionController) DeletePresetGroup(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	groupID, err := parsePresetGroupID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	if err := ctl.Service.Delete(c.Context(), &userID, groupID); err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonDeleted(c, "Grup opsi preset dihapus", nil)
}

// GetPresetTree
// GET /api/a/preset-options/tree
func (ctl *PresetOptionController) GetPresetTree(c *fiber.Ctx) error {
	userID, err := ctl.callerID(c)
	if err != nil {
		return err
	}
	tree, err := ctl.Service.EnabledTree(c.Context(), &userID)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonOK(c, "Berhasil mengambil pustaka opsi", tree)
}
