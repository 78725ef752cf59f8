package helper

import (
	"log"
	"time"

	"github.com/ecoradom4/cine-backend/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

var maintenanceScheduler gocron.Scheduler

// DeactivateExpiredCampaigns tắt khuyến mãi và rule giá đã quá hạn
func DeactivateExpiredCampaigns(db *gorm.DB) {
	log.Println("[CRON] DeactivateExpiredCampaigns triggered")

	now := time.Now().UTC()

	result := db.Model(&model.Promotion{}).
		Where("is_active = ? AND valid_until < ?", true, now).
		Update("is_active", false)
	if result.Error != nil {
		log.Printf("Lỗi tắt khuyến mãi hết hạn: %v", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("Đã tắt %d khuyến mãi hết hạn", result.RowsAffected)
	}

	result = db.Model(&model.PricingRule{}).
		Where("is_active = ? AND valid_until IS NOT NULL AND valid_until < ?", true, now).
		Update("is_active", false)
	if result.Error != nil {
		log.Printf("Lỗi tắt rule giá hết hạn: %v", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("Đã tắt %d rule giá hết hạn", result.RowsAffected)
	}
}

func StartMaintenanceScheduler(db *gorm.DB) {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	maintenanceScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(func() {
			DeactivateExpiredCampaigns(db)
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Maintenance scheduler started (00:05)")
}

func StopMaintenanceScheduler() {
	if maintenanceScheduler != nil {
		_ = maintenanceScheduler.Shutdown()
	}
}
