package helper

import (
	"log"
	"time"

	"github.com/ecoradom4/cine-backend/model"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

var scheduler *cron.Cron

func StartShowtimeScheduler(db *gorm.DB) {
	scheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	// Chạy mỗi 5 phút
	_, err := scheduler.AddFunc("*/5 * * * *", func() {
		UpdateShowtimeStatuses(db)
	})
	if err != nil {
		log.Printf("Lỗi khởi tạo scheduler: %v", err)
		return
	}

	scheduler.Start()
	log.Println("Scheduler suất chiếu đã khởi động (mỗi 5 phút)")
}

// UpdateShowtimeStatuses chuyển scheduled → active khi đến giờ chiếu
// và active → completed khi hết giờ
func UpdateShowtimeStatuses(db *gorm.DB) {
	now := time.Now().UTC()

	result := db.Model(&model.Showtime{}).
		Where("status = ? AND start_time <= ? AND end_time > ?", "scheduled", now, now).
		Update("status", "active")
	if result.Error != nil {
		log.Printf("Lỗi cập nhật suất chiếu: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Đã chuyển %d suất chiếu sang 'active'", result.RowsAffected)
	}

	result = db.Model(&model.Showtime{}).
		Where("status IN ? AND end_time <= ?", []string{"scheduled", "active"}, now).
		Update("status", "completed")
	if result.Error != nil {
		log.Printf("Lỗi cập nhật suất chiếu: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Đã chuyển %d suất chiếu sang 'completed'", result.RowsAffected)
	}
}

// Dừng scheduler khi tắt server
func StopShowtimeScheduler() {
	if scheduler != nil {
		scheduler.Stop()
		log.Println("Scheduler suất chiếu đã dừng")
	}
}
