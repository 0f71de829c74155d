package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"surveyku_backend/internals/configs"
	permModel "surveyku_backend/internals/features/permissions/model"
	responseModel "surveyku_backend/internals/features/responses/model"
	surveyModel "surveyku_backend/internals/features/surveys/model"
	userModel "surveyku_backend/internals/features/users/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=surveyku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// AutoMigrate semua tabel yang dipakai backend survei.
func Migrate() {
	if err := DB.AutoMigrate(
		&userModel.DepartmentModel{},
		&userModel.UserModel{},
		&permModel.RoleModel{},
		&permModel.PermissionModel{},
		&permModel.RolePermissionModel{},
		&permModel.UserRoleModel{},
		&surveyModel.SurveyModel{},
		&surveyModel.SurveyQuestionModel{},
		&surveyModel.PresetOptionGroupModel{},
		&surveyModel.PresetOptionItemModel{},
		&responseModel.ResponseModel{},
		&responseModel.ResponseItemModel{},
	); err != nil {
		log.Fatalf("❌ Gagal migrasi DB: %v", err)
	}
	log.Println("✅ Migrasi DB selesai.")
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
