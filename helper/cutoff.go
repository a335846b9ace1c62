package helper

import (
	"campus_queue/database"
	"campus_queue/model"
	"time"

	"gorm.io/gorm"
)

// IsCampusCutoff kiểm tra campus đã đóng cổng nhận hàng đợi hôm nay chưa.
// Chỉ đọc — không bao giờ tự bật is_cutoff (việc đó là của scheduler).
func IsCampusCutoff(campus string) bool {
	return isCampusCutoffAt(database.DB, campus, time.Now())
}

func isCampusCutoffAt(db *gorm.DB, campus string, now time.Time) bool {
	startOfDay, endOfDay := DayWindow(now)

	// Lấy lịch cutoff mới nhất trong hôm nay khớp campus này hoặc lịch global
	var sched model.CutoffSchedule
	err := db.Where("campus = ? OR campus = ''", NormalizeCampus(campus)).
		Where("cutoff_time >= ? AND cutoff_time < ?", startOfDay.UTC(), endOfDay.UTC()).
		Order("cutoff_time desc").
		First(&sched).Error
	if err != nil {
		// không có lịch hôm nay cho campus này -> chưa cutoff
		return false
	}

	// Đã bật cờ, hoặc đã qua giờ cutoff mà poller chưa kịp chạy
	return sched.IsCutoff || !now.Before(sched.CutoffTime)
}
