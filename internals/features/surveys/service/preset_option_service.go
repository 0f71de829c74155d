// file: internals/features/surveys/service/preset_option_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	permModel "surveyku_backend/internals/features/permissions/model"
	permService "surveyku_backend/internals/features/permissions/service"
	dto "surveyku_backend/internals/features/surveys/dto"
	model "surveyku_backend/internals/features/surveys/model"
	helper "surveyku_backend/internals/helpers"
)

/* =========================================================
   Pustaka opsi preset: grup opsi siap pakai ("Jenis kelamin",
   "Pendidikan terakhir", ...) untuk editor pertanyaan pilihan.
   Pengelolaan hanya untuk pemegang scope SCHOOL; pohon opsi
   aktif terbuka untuk semua user login.
========================================================= */

type PresetOptionService struct {
	DB   *gorm.DB
	Perm *permService.PermissionService
}

func NewPresetOptionService(db *gorm.DB, perm *permService.PermissionService) *PresetOptionService {
	return &PresetOptionService{DB: db, Perm: perm}
}

func (s *PresetOptionService) requireManage(ctx context.Context, userID *uuid.UUID) error {
	return s.Perm.RequireSchoolScope(ctx, userID, permModel.ResourceSurvey, permModel.ActionEdit)
}

// Query daftar grup untuk halaman pengelolaan. Keyword cocok ke nama
// atau kategori, filter kategori exact match.
func (s *PresetOptionService) Query(ctx context.Context, userID *uuid.UUID, req *dto.PresetQueryRequest) ([]dto.PresetGroupVO, int64, error) {
	if err := s.requireManage(ctx, userID); err != nil {
		return nil, 0, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PageSize
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	base := func() *gorm.DB {
		q := s.DB.WithContext(ctx).Model(&model.PresetOptionGroupModel{})
		if kw := strings.TrimSpace(req.Keyword); kw != "" {
			like := "%" + kw + "%"
			q = q.Where("preset_option_group_name LIKE ? OR preset_option_group_category LIKE ?", like, like)
		}
		if cat := strings.TrimSpace(req.Category); cat != "" {
			q = q.Where("preset_option_group_category = ?", cat)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var groups []model.PresetOptionGroupModel
	if err := base().
		Order("preset_option_group_category ASC, preset_option_group_sort ASC, preset_option_group_created_at ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&groups).Error; err != nil {
		return nil, 0, err
	}

	list := make([]dto.PresetGroupVO, 0, len(groups))
	for i := range groups {
		list = append(list, dto.NewPresetGroupVO(&groups[i]))
	}
	return list, total, nil
}

func (s *PresetOptionService) GetDetail(ctx context.Context, userID *uuid.UUID, groupID uuid.UUID) (*dto.PresetGroupDetailVO, error) {
	if err := s.requireManage(ctx, userID); err != nil {
		return nil, err
	}
	var group model.PresetOptionGroupModel
	err := s.DB.WithContext(ctx).
		Where("preset_option_group_id = ?", groupID).
		First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	items, err := s.listItems(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &dto.PresetGroupDetailVO{
		PresetGroupVO: dto.NewPresetGroupVO(&group),
		Items:         dto.NewPresetItemVOs(items),
	}, nil
}

func validatePresetGroup(req *dto.UpsertPresetGroupRequest) error {
	if strings.TrimSpace(req.Category) == "" {
		return helper.NewBusinessError(helper.CodeParamError, "Kategori tidak boleh kosong")
	}
	if strings.TrimSpace(req.Name) == "" {
		return helper.NewBusinessError(helper.CodeParamError, "Nama tidak boleh kosong")
	}
	return nil
}

func (s *PresetOptionService) Create(ctx context.Context, userID *uuid.UUID, req *dto.UpsertPresetGroupRequest) (*dto.PresetGroupDetailVO, error) {
	if err := s.requireManage(ctx, userID); err != nil {
		return nil, err
	}
	if err := validatePresetGroup(req); err != nil {
		return nil, err
	}

	group := model.PresetOptionGroupModel{
		PresetOptionGroupCategory: strings.TrimSpace(req.Category),
		PresetOptionGroupName:     strings.TrimSpace(req.Name),
		// Default bool/int diisi di sini, bukan lewat tag default gorm,
		// supaya nilai zero dari request tetap tersimpan apa adanya.
		PresetOptionGroupEnabled: true,
	}
	if req.Sort != nil {
		group.PresetOptionGroupSort = *req.Sort
	}
	if req.Enabled != nil {
		group.PresetOptionGroupEnabled = *req.Enabled
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		return replacePresetItems(tx, group.PresetOptionGroupID, req.Items)
	})
	if err != nil {
		return nil, err
	}
	return s.GetDetail(ctx, userID, group.PresetOptionGroupID)
}

func (s *PresetOptionService) Update(ctx context.Context, userID *uuid.UUID, groupID uuid.UUID, req *dto.UpsertPresetGroupRequest) (*dto.PresetGroupDetailVO, error) {
	if err := s.requireManage(ctx, userID); err != nil {
		return nil, err
	}
	if err := validatePresetGroup(req); err != nil {
		return nil, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group model.PresetOptionGroupModel
		err := tx.Where("preset_option_group_id = ?", groupID).First(&group).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrNotFound
		}
		if err != nil {
			return err
		}

		group.PresetOptionGroupCategory = strings.TrimSpace(req.Category)
		group.PresetOptionGroupName = strings.TrimSpace(req.Name)
		if req.Sort != nil {
			group.PresetOptionGroupSort = *req.Sort
		}
		if req.Enabled != nil {
			group.PresetOptionGroupEnabled = *req.Enabled
		}
		if err := tx.Save(&group).Error; err != nil {
			return err
		}
		return replacePresetItems(tx, groupID, req.Items)
	})
	if err != nil {
		return nil, err
	}
	return s.GetDetail(ctx, userID, groupID)
}

// Delete menghapus grup beserta itemnya. Grup yang sudah tidak ada
// dianggap selesai, bukan error.
func (s *PresetOptionService) Delete(ctx context.Context, userID *uuid.UUID, groupID uuid.UUID) error {
	if err := s.requireManage(ctx, userID); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("preset_option_item_group_id = ?", groupID).
			Delete(&model.PresetOptionItemModel{}).Error; err != nil {
			return err
		}
		return tx.Where("preset_option_group_id = ?", groupID).
			Delete(&model.PresetOptionGroupModel{}).Error
	})
}

// EnabledTree mengembalikan grup aktif yang dikelompokkan per kategori,
// urutan kategori mengikuti urutan grup. Dipanggil editor pertanyaan,
// cukup login tanpa scope khusus.
func (s *PresetOptionService) EnabledTree(ctx context.Context, userID *uuid.UUID) ([]dto.PresetCategoryVO, error) {
	if userID == nil {
		return nil, helper.ErrUnauthorized
	}
	var groups []model.PresetOptionGroupModel
	if err := s.DB.WithContext(ctx).
		Where("preset_option_group_enabled = ?", true).
		Order("preset_option_group_category ASC, preset_option_group_sort ASC, preset_option_group_created_at ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}

	tree := make([]dto.PresetCategoryVO, 0)
	index := make(map[string]int)
	for i := range groups {
		g := &groups[i]
		items, err := s.listItems(ctx, g.PresetOptionGroupID)
		if err != nil {
			return nil, err
		}
		detail := dto.PresetGroupDetailVO{
			PresetGroupVO: dto.NewPresetGroupVO(g),
			Items:         dto.NewPresetItemVOs(items),
		}
		pos, ok := index[g.PresetOptionGroupCategory]
		if !ok {
			pos = len(tree)
			index[g.PresetOptionGroupCategory] = pos
			tree = append(tree, dto.PresetCategoryVO{Category: g.PresetOptionGroupCategory})
		}
		tree[pos].Groups = append(tree[pos].Groups, detail)
	}
	return tree, nil
}

func (s *PresetOptionService) listItems(ctx context.Context, groupID uuid.UUID) ([]model.PresetOptionItemModel, error) {
	var items []model.PresetOptionItemModel
	err := s.DB.WithContext(ctx).
		Where("preset_option_item_group_id = ?", groupID).
		Order("preset_option_item_sort_order ASC, preset_option_item_created_at ASC").
		Find(&items).Error
	return items, err
}

// replacePresetItems mengganti seluruh item grup dengan isi request.
// Label kosong dilewati, sort_order tanpa nilai memakai posisi di array.
func replacePresetItems(tx *gorm.DB, groupID uuid.UUID, inputs []dto.PresetItemInput) error {
	if err := tx.Where("preset_option_item_group_id = ?", groupID).
		Delete(&model.PresetOptionItemModel{}).Error; err != nil {
		return err
	}
	rows := make([]model.PresetOptionItemModel, 0, len(inputs))
	for i := range inputs {
		in := &inputs[i]
		label := strings.TrimSpace(in.Label)
		if label == "" {
			continue
		}
		row := model.PresetOptionItemModel{
			PresetOptionItemGroupID:   groupID,
			PresetOptionItemSortOrder: i,
			PresetOptionItemLabel:     label,
			PresetOptionItemAllowFill: in.AllowFill,
			PresetOptionItemDesc:      in.Desc,
			PresetOptionItemDescPopup: in.DescPopup,
			PresetOptionItemImageURL:  in.ImageURL,
		}
		if in.SortOrder != nil {
			row.PresetOptionItemSortOrder = *in.SortOrder
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}
