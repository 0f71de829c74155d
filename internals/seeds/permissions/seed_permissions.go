package permissions

import (
	"errors"
	"log"

	"gorm.io/gorm"

	model "surveyku_backend/internals/features/permissions/model"
)

/* =========================================================
   Seed role + permission bawaan. Idempoten: baris yang sudah
   ada dilewati, aman dijalankan berulang.

   - admin_sekolah : semua aksi, scope SCHOOL
   - kepala_departemen : semua aksi, scope DEPARTMENT
   - guru : semua aksi, scope SELF
========================================================= */

type rolePermissionSeed struct {
	RoleName     string
	ResourceType string
	Action       string
	DataScope    model.DataScope
}

func defaultSeeds() []rolePermissionSeed {
	actions := map[string][]string{
		model.ResourceSurvey: {
			model.ActionView, model.ActionEdit, model.ActionCreate,
			model.ActionPublish, model.ActionDelete,
		},
		model.ResourceResponse: {
			model.ActionView, model.ActionExport,
		},
	}
	roles := []struct {
		Name  string
		Scope model.DataScope
	}{
		{"admin_sekolah", model.ScopeSchool},
		{"kepala_departemen", model.ScopeDepartment},
		{"guru", model.ScopeSelf},
	}

	var seeds []rolePermissionSeed
	for _, r := range roles {
		for resource, acts := range actions {
			for _, a := range acts {
				seeds = append(seeds, rolePermissionSeed{
					RoleName:     r.Name,
					ResourceType: resource,
					Action:       a,
					DataScope:    r.Scope,
				})
			}
		}
	}
	return seeds
}

func SeedDefaultRolePermissions(db *gorm.DB) {
	log.Println("📥 Seeding role & permission bawaan...")

	for _, seed := range defaultSeeds() {
		var role model.RoleModel
		err := db.Where("role_name = ?", seed.RoleName).First(&role).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			role = model.RoleModel{RoleName: seed.RoleName}
			if err := db.Create(&role).Error; err != nil {
				log.Fatalf("❌ Gagal insert role %s: %v", seed.RoleName, err)
			}
		} else if err != nil {
			log.Fatalf("❌ Gagal ambil role %s: %v", seed.RoleName, err)
		}

		var perm model.PermissionModel
		err = db.Where("permission_resource_type = ? AND permission_action = ? AND permission_data_scope = ?",
			seed.ResourceType, seed.Action, seed.DataScope).First(&perm).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			perm = model.PermissionModel{
				PermissionResourceType: seed.ResourceType,
				PermissionAction:       seed.Action,
				PermissionDataScope:    seed.DataScope,
			}
			if err := db.Create(&perm).Error; err != nil {
				log.Fatalf("❌ Gagal insert permission %s/%s: %v", seed.ResourceType, seed.Action, err)
			}
		} else if err != nil {
			log.Fatalf("❌ Gagal ambil permission %s/%s: %v", seed.ResourceType, seed.Action, err)
		}

		var count int64
		if err := db.Model(&model.RolePermissionModel{}).
			Where("role_permission_role_id = ? AND role_permission_permission_id = ?", role.RoleID, perm.PermissionID).
			Count(&count).Error; err != nil {
			log.Fatalf("❌ Gagal cek role_permission: %v", err)
		}
		if count == 0 {
			link := model.RolePermissionModel{
				RolePermissionRoleID:       role.RoleID,
				RolePermissionPermissionID: perm.PermissionID,
			}
			if err := db.Create(&link).Error; err != nil {
				log.Fatalf("❌ Gagal insert role_permission: %v", err)
			}
		}
	}

	log.Println("✅ Seed role & permission selesai.")
}
