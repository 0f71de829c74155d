package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"surveyku_backend/internals/features/surveys/model"

	"gorm.io/gorm"
)

// StartSurveyAutoEndScheduler menutup survei COLLECTING yang sudah lewat
// end_time. Status berubah jadi ENDED sehingga gate pengisian ikut menolak.
func StartSurveyAutoEndScheduler(db *gorm.DB) {
	go func() {
		// Interval dari env (default: 60 detik)
		intervalSeconds := 60
		if val := os.Getenv("SURVEY_AUTO_END_INTERVAL_SECONDS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				intervalSeconds = parsed
			}
		}

		for {
			res := db.Model(&model.SurveyModel{}).
				Where("survey_status = ? AND survey_end_time IS NOT NULL AND survey_end_time < ?",
					model.SurveyStatusCollecting, time.Now()).
				Update("survey_status", model.SurveyStatusEnded)
			if res.Error != nil {
				log.Printf("[AUTO-END ERROR] Gagal menutup survei kadaluarsa: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[AUTO-END] %d survei ditutup otomatis", res.RowsAffected)
			}

			time.Sleep(time.Duration(intervalSeconds) * time.Second)
		}
	}()
}
