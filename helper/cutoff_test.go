package helper

import (
	"campus_queue/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func seedSchedule(t *testing.T, db *gorm.DB, campus string, cutoffAt time.Time, isCutoff bool) model.CutoffSchedule {
	sched := model.CutoffSchedule{
		Campus:     NormalizeCampus(campus),
		CutoffTime: cutoffAt.UTC(),
		IsCutoff:   isCutoff,
	}
	if err := db.Create(&sched).Error; err != nil {
		t.Fatalf("Failed to seed cutoff schedule: %v", err)
	}
	return sched
}

func TestGateOpenWithoutSchedule(t *testing.T) {
	db := setupTestDB(t)

	assert.False(t, isCampusCutoffAt(db, "main-campus", testDay(10, 0)))
}

func TestGateClosesAtCutoffTime(t *testing.T) {
	db := setupTestDB(t)
	seedSchedule(t, db, "main-campus", testDay(14, 0), false)

	// trước giờ cutoff, cờ chưa bật -> còn mở
	assert.False(t, isCampusCutoffAt(db, "main-campus", testDay(13, 59)))

	// quá giờ cutoff thì đóng ngay cả khi poller chưa flip cờ
	assert.True(t, isCampusCutoffAt(db, "main-campus", testDay(14, 0)))
	assert.True(t, isCampusCutoffAt(db, "main-campus", testDay(14, 1)))
}

func TestGateClosedOnceFlagged(t *testing.T) {
	db := setupTestDB(t)
	seedSchedule(t, db, "main-campus", testDay(14, 0), true)

	// cờ đã bật thì đóng bất kể giờ
	assert.True(t, isCampusCutoffAt(db, "main-campus", testDay(9, 0)))
}

func TestGateCampusScope(t *testing.T) {
	db := setupTestDB(t)
	seedSchedule(t, db, "main-campus", testDay(14, 0), true)

	assert.True(t, isCampusCutoffAt(db, "main-campus", testDay(15, 0)))
	// lịch campus khác không ảnh hưởng
	assert.False(t, isCampusCutoffAt(db, "south-campus", testDay(15, 0)))
}

func TestGateGlobalScheduleAppliesToAllCampuses(t *testing.T) {
	db := setupTestDB(t)
	seedSchedule(t, db, "", testDay(14, 0), false)

	assert.True(t, isCampusCutoffAt(db, "main-campus", testDay(15, 0)))
	assert.True(t, isCampusCutoffAt(db, "south-campus", testDay(15, 0)))
	assert.True(t, isCampusCutoffAt(db, "", testDay(15, 0)))
}

func TestGateUsesLatestScheduleOfDay(t *testing.T) {
	db := setupTestDB(t)
	// lịch sớm đã qua và đã flip, lịch muộn mới là lịch có hiệu lực
	seedSchedule(t, db, "main-campus", testDay(12, 0), true)
	seedSchedule(t, db, "main-campus", testDay(16, 0), false)

	assert.False(t, isCampusCutoffAt(db, "main-campus", testDay(13, 0)))
	assert.True(t, isCampusCutoffAt(db, "main-campus", testDay(16, 30)))
}

func TestGateIgnoresYesterdaySchedule(t *testing.T) {
	db := setupTestDB(t)
	seedSchedule(t, db, "main-campus", testDay(14, 0).AddDate(0, 0, -1), true)

	assert.False(t, isCampusCutoffAt(db, "main-campus", testDay(15, 0)))
}

func TestGateNormalizesCampusInput(t *testing.T) {
	db := setupTestDB(t)
	seedSchedule(t, db, "Main Campus", testDay(14, 0), true)

	assert.True(t, isCampusCutoffAt(db, "Main Campus", testDay(15, 0)))
	assert.True(t, isCampusCutoffAt(db, "main-campus", testDay(15, 0)))
}
