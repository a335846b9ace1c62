package helper

import (
	"campus_queue/model"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}

	// :memory: là per-connection — phải ghim pool về 1 conn để mọi goroutine
	// thấy cùng một database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{},
		&model.Student{},
		&model.Guest{},
		&model.NewEnrollee{},
		&model.QueueEntry{},
		&model.LegacyQueueEntry{},
		&model.CutoffSchedule{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate tables: %v", err)
	}

	return db
}

var seedCounter atomic.Uint64

func seedGuest(t *testing.T, db *gorm.DB, campus string, priority *bool) model.RequesterRef {
	n := seedCounter.Add(1)
	guest := model.Guest{
		QrId:     fmt.Sprintf("guest-qr-%d", n),
		Name:     "Test Guest",
		Campus:   campus,
		Priority: priority,
	}
	if err := db.Create(&guest).Error; err != nil {
		t.Fatalf("Failed to seed guest: %v", err)
	}
	return guest.Ref()
}

func seedStudent(t *testing.T, db *gorm.DB, campus string, priority *bool) model.RequesterRef {
	n := seedCounter.Add(1)
	student := model.Student{
		QrId:     fmt.Sprintf("student-qr-%d", n),
		Name:     "Test Student",
		Email:    fmt.Sprintf("student%d@example.com", n),
		Campus:   campus,
		Priority: priority,
	}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("Failed to seed student: %v", err)
	}
	return student.Ref()
}

func boolPtr(b bool) *bool { return &b }

func testDay(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, ManilaTZ)
}

func TestCreateQueueEntryDualWrite(t *testing.T) {
	db := setupTestDB(t)
	guest := seedGuest(t, db, "main-campus", boolPtr(false))

	entry, err := CreateQueueEntry(db, guest, "Inquiry", "", testDay(9, 0))
	assert.NoError(t, err)
	assert.Equal(t, "S-0001", entry.QueueNumber)
	assert.Equal(t, model.QueueOnQueue, entry.Status)
	assert.Equal(t, 0, entry.OnHoldCount)

	var legacy model.LegacyQueueEntry
	err = db.Where("queue_number = ?", entry.QueueNumber).First(&legacy).Error
	assert.NoError(t, err)
	assert.Equal(t, entry.QueueNumber, legacy.QueueNumber)
	assert.Equal(t, entry.Status, legacy.Status)
	assert.Equal(t, entry.Priority, legacy.Priority)
	assert.NotNil(t, legacy.GuestId)
	assert.Equal(t, guest.Id, *legacy.GuestId)
	assert.Nil(t, legacy.StudentId)
	assert.Nil(t, legacy.NewEnrolleeId)
}

func TestCreateQueueEntryPriorityUnset(t *testing.T) {
	db := setupTestDB(t)
	guest := seedGuest(t, db, "", nil)

	_, err := CreateQueueEntry(db, guest, "Inquiry", "", testDay(9, 0))
	assert.ErrorIs(t, err, ErrPriorityUnset)

	// không được ghi nửa chừng
	var count int64
	db.Model(&model.QueueEntry{}).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&model.LegacyQueueEntry{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestEnsurePriorityDefaultsToStandard(t *testing.T) {
	db := setupTestDB(t)
	guest := seedGuest(t, db, "", nil)

	err := EnsurePriority(db, &guest)
	assert.NoError(t, err)
	assert.NotNil(t, guest.Priority)
	assert.False(t, *guest.Priority)

	var stored model.Guest
	db.First(&stored, guest.Id)
	assert.NotNil(t, stored.Priority)
	assert.False(t, *stored.Priority)
}

func TestPriorityImmutableAfterCreation(t *testing.T) {
	db := setupTestDB(t)
	guest := seedGuest(t, db, "", boolPtr(false))

	entry, err := CreateQueueEntry(db, guest, "Inquiry", "", testDay(9, 0))
	assert.NoError(t, err)
	assert.False(t, entry.Priority)

	// đổi cờ priority của requester sau khi vé đã cấp
	db.Model(&model.Guest{}).Where("id = ?", guest.Id).Update("priority", true)

	var stored model.QueueEntry
	db.First(&stored, entry.ID)
	assert.False(t, stored.Priority)

	var legacy model.LegacyQueueEntry
	db.Where("queue_number = ?", entry.QueueNumber).First(&legacy)
	assert.False(t, legacy.Priority)
}

func TestFindRequesterByQrId(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "south-campus", boolPtr(true))

	var stored model.Student
	db.First(&stored, student.Id)

	found, err := FindRequesterByQrId(db, stored.QrId)
	assert.NoError(t, err)
	assert.Equal(t, model.RequesterStudent, found.Type)
	assert.Equal(t, student.Id, found.Id)
	assert.Equal(t, "south-campus", found.Campus)

	_, err = FindRequesterByQrId(db, "does-not-exist")
	assert.ErrorIs(t, err, ErrRequesterNotFound)
}

func TestHasActiveStudentEntry(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "", boolPtr(false))

	active, err := HasActiveStudentEntry(db, student.Id)
	assert.NoError(t, err)
	assert.False(t, active)

	entry, err := CreateQueueEntry(db, student, "Payment", "", testDay(9, 0))
	assert.NoError(t, err)

	active, err = HasActiveStudentEntry(db, student.Id)
	assert.NoError(t, err)
	assert.True(t, active)

	// vé kết thúc thì hết tính là active
	_, err = FinishQueueEntry(db, entry.ID, model.QueueCompleted)
	assert.NoError(t, err)

	active, err = HasActiveStudentEntry(db, student.Id)
	assert.NoError(t, err)
	assert.False(t, active)
}

func TestStateMachineTransitions(t *testing.T) {
	db := setupTestDB(t)
	guest := seedGuest(t, db, "", boolPtr(false))

	user := model.User{Username: "cashier1", Password: "x", Role: "CASHIER", IsActive: true}
	assert.NoError(t, db.Create(&user).Error)

	entry, err := CreateQueueEntry(db, guest, "Inquiry", "", testDay(9, 0))
	assert.NoError(t, err)

	assertBothStatus := func(expected string) {
		var current model.QueueEntry
		db.First(&current, entry.ID)
		assert.Equal(t, expected, current.Status)

		var legacy model.LegacyQueueEntry
		db.Where("queue_number = ?", entry.QueueNumber).First(&legacy)
		assert.Equal(t, expected, legacy.Status)
	}

	// hold khi chưa reserve là sai
	_, err = HoldQueueEntry(db, entry.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// ON_QUEUE -> IN_PROCESS
	reserved, err := ReserveQueueEntry(db, entry.ID, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.QueueInProcess, reserved.Status)
	assert.Equal(t, user.ID, *reserved.ReservedById)
	assertBothStatus(model.QueueInProcess)

	// IN_PROCESS -> ON_HOLD: tăng onHoldCount, giữ reservedBy
	held, err := HoldQueueEntry(db, entry.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, held.OnHoldCount)
	assertBothStatus(model.QueueOnHold)

	var stored model.QueueEntry
	db.First(&stored, entry.ID)
	assert.NotNil(t, stored.ReservedById)
	assert.Equal(t, user.ID, *stored.ReservedById)

	// ON_HOLD -> IN_PROCESS: re-claim bởi user khác
	user2 := model.User{Username: "cashier2", Password: "x", Role: "CASHIER", IsActive: true}
	assert.NoError(t, db.Create(&user2).Error)
	reclaimed, err := ReserveQueueEntry(db, entry.ID, user2.ID)
	assert.NoError(t, err)
	assert.Equal(t, user2.ID, *reclaimed.ReservedById)
	assertBothStatus(model.QueueInProcess)

	// IN_PROCESS -> COMPLETED là terminal
	_, err = FinishQueueEntry(db, entry.ID, model.QueueCompleted)
	assert.NoError(t, err)
	assertBothStatus(model.QueueCompleted)

	_, err = ReserveQueueEntry(db, entry.ID, user.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = FinishQueueEntry(db, entry.ID, model.QueueCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestFinishRejectsNonFinishStatus(t *testing.T) {
	db := setupTestDB(t)
	guest := seedGuest(t, db, "", boolPtr(false))

	entry, err := CreateQueueEntry(db, guest, "Inquiry", "", testDay(9, 0))
	assert.NoError(t, err)

	_, err = FinishQueueEntry(db, entry.ID, model.QueueCutOff)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
