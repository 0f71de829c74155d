package seeds

import (
	permissionsSeed "surveyku_backend/internals/seeds/permissions"

	"gorm.io/gorm"
)

func RunAllSeeds(db *gorm.DB) {
	permissionsSeed.SeedDefaultRolePermissions(db)
}
