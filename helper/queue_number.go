package helper

import (
	"campus_queue/model"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
)

// Mỗi partition (ngày, priority) một mutex. Count-then-insert không có khóa
// sẽ cấp trùng số khi request song song, nên mutex phải giữ suốt từ lúc đếm
// đến khi insert xong (CreateQueueEntry giữ khóa này).
var queuePartitionLocks sync.Map

func queuePrefix(priority bool) string {
	if priority {
		return "P"
	}
	return "S"
}

// LockQueuePartition khoá partition (ngày, priority); caller phải Unlock.
func LockQueuePartition(asOf time.Time, priority bool) *sync.Mutex {
	key := asOf.In(ManilaTZ).Format("2006-01-02") + "|" + queuePrefix(priority)
	v, _ := queuePartitionLocks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu
}

// DayWindow trả về [00:00, 00:00 hôm sau) theo giờ Manila của ngày chứa asOf
func DayWindow(asOf time.Time) (time.Time, time.Time) {
	local := asOf.In(ManilaTZ)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, ManilaTZ)
	return start, start.Add(24 * time.Hour)
}

// GenerateQueueNumber đếm số vé đã cấp trong ngày cho priority đó trên CẢ HAI
// bảng, lấy max của hai count rồi +1. Lấy max nghĩa là khi hai bảng lệch nhau
// thì thà nhảy số còn hơn cấp trùng. Caller phải giữ khóa partition.
func GenerateQueueNumber(db *gorm.DB, priority bool, asOf time.Time) string {
	startOfDay, endOfDay := DayWindow(asOf)

	var countCurrent int64
	db.Model(&model.QueueEntry{}).
		Where("created_at >= ? AND created_at < ? AND priority = ?", startOfDay, endOfDay, priority).
		Count(&countCurrent)

	var countLegacy int64
	db.Model(&model.LegacyQueueEntry{}).
		Where("created_at >= ? AND created_at < ? AND priority = ?", startOfDay, endOfDay, priority).
		Count(&countLegacy)

	next := countCurrent
	if countLegacy > next {
		next = countLegacy
	}
	next++

	return fmt.Sprintf("%s-%04d", queuePrefix(priority), next)
}

// queueNumberTaken kiểm tra số đã tồn tại trong partition ngày chưa
func queueNumberTaken(db *gorm.DB, queueNumber string, asOf time.Time) bool {
	startOfDay, endOfDay := DayWindow(asOf)

	var count int64
	db.Model(&model.QueueEntry{}).
		Where("queue_number = ? AND created_at >= ? AND created_at < ?", queueNumber, startOfDay, endOfDay).
		Count(&count)
	if count > 0 {
		return true
	}

	db.Model(&model.LegacyQueueEntry{}).
		Where("queue_number = ? AND created_at >= ? AND created_at < ?", queueNumber, startOfDay, endOfDay).
		Count(&count)
	return count > 0
}
