package helper

import (
	"campus_queue/model"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateQueueNumberFormat(t *testing.T) {
	db := setupTestDB(t)

	assert.Equal(t, "P-0001", GenerateQueueNumber(db, true, testDay(9, 0)))
	assert.Equal(t, "S-0001", GenerateQueueNumber(db, false, testDay(9, 0)))
}

func TestQueueNumberPartitionsIndependent(t *testing.T) {
	db := setupTestDB(t)
	standard := seedGuest(t, db, "", boolPtr(false))
	priority := seedGuest(t, db, "", boolPtr(true))

	e1, err := CreateQueueEntry(db, standard, "Inquiry", "", testDay(9, 0))
	assert.NoError(t, err)
	e2, err := CreateQueueEntry(db, priority, "Inquiry", "", testDay(9, 1))
	assert.NoError(t, err)
	e3, err := CreateQueueEntry(db, standard, "Payment", "", testDay(9, 2))
	assert.NoError(t, err)

	assert.Equal(t, "S-0001", e1.QueueNumber)
	assert.Equal(t, "P-0001", e2.QueueNumber)
	assert.Equal(t, "S-0002", e3.QueueNumber)

	// ngày hôm sau đếm lại từ đầu
	e4, err := CreateQueueEntry(db, standard, "Inquiry", "", testDay(9, 0).AddDate(0, 0, 1))
	assert.NoError(t, err)
	assert.Equal(t, "S-0001", e4.QueueNumber)
}

func TestGenerateQueueNumberTakesMaxOfBothTables(t *testing.T) {
	db := setupTestDB(t)

	// bảng legacy lệch lên 2 dòng so với bảng current
	for i := 0; i < 2; i++ {
		legacy := model.LegacyQueueEntry{
			QueueNumber: GenerateQueueNumber(db, false, testDay(8, 0)),
			Priority:    false,
			Status:      model.QueueOnQueue,
		}
		legacy.CreatedAt = testDay(8, 0)
		legacy.UpdatedAt = testDay(8, 0)
		assert.NoError(t, db.Create(&legacy).Error)
	}

	// max(0, 2) + 1
	assert.Equal(t, "S-0003", GenerateQueueNumber(db, false, testDay(9, 0)))
}

func TestConcurrentQueueNumbersUnique(t *testing.T) {
	db := setupTestDB(t)
	guest := seedGuest(t, db, "", boolPtr(false))
	asOf := testDay(10, 0)

	const workers = 50
	numbers := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entry, err := CreateQueueEntry(db, guest, "Inquiry", "", asOf)
			if err != nil {
				t.Errorf("CreateQueueEntry failed: %v", err)
				return
			}
			numbers <- entry.QueueNumber
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool)
	for num := range numbers {
		assert.False(t, seen[num], "duplicate queue number %s", num)
		seen[num] = true
	}
	assert.Len(t, seen, workers)
	assert.True(t, seen["S-0001"])
	assert.True(t, seen["S-0050"])

	var legacyCount int64
	db.Model(&model.LegacyQueueEntry{}).Count(&legacyCount)
	assert.Equal(t, int64(workers), legacyCount)
}

func TestDayWindowManila(t *testing.T) {
	// 2025-03-10 01:00 UTC = 09:00 Manila -> cùng ngày Manila
	utcMorning := time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)
	start, end := DayWindow(utcMorning)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, ManilaTZ).Unix(), start.Unix())
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, ManilaTZ).Unix(), end.Unix())

	// 2025-03-10 20:00 UTC = 04:00 Manila NGÀY 11 -> rơi sang ngày sau
	utcEvening := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	start, _ = DayWindow(utcEvening)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, ManilaTZ).Unix(), start.Unix())
}
