package helper

import (
	"campus_queue/model"
	"errors"
	"time"

	"gorm.io/gorm"
)

// FindRequesterByQrId quét lần lượt 3 bảng requester theo qrId
func FindRequesterByQrId(db *gorm.DB, qrId string) (*model.RequesterRef, error) {
	var student model.Student
	if err := db.Where("qr_id = ?", qrId).First(&student).Error; err == nil {
		ref := student.Ref()
		return &ref, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var guest model.Guest
	if err := db.Where("qr_id = ?", qrId).First(&guest).Error; err == nil {
		ref := guest.Ref()
		return &ref, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var enrollee model.NewEnrollee
	if err := db.Where("qr_id = ?", qrId).First(&enrollee).Error; err == nil {
		ref := enrollee.Ref()
		return &ref, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return nil, ErrRequesterNotFound
}

// EnsurePriority default cờ priority = false nếu requester chưa có, ghi luôn
// xuống bảng requester tương ứng
func EnsurePriority(db *gorm.DB, requester *model.RequesterRef) error {
	if requester.Priority != nil {
		return nil
	}

	var err error
	switch requester.Type {
	case model.RequesterStudent:
		err = db.Model(&model.Student{}).Where("id = ?", requester.Id).Update("priority", false).Error
	case model.RequesterGuest:
		err = db.Model(&model.Guest{}).Where("id = ?", requester.Id).Update("priority", false).Error
	case model.RequesterNewEnrollee:
		err = db.Model(&model.NewEnrollee{}).Where("id = ?", requester.Id).Update("priority", false).Error
	default:
		return ErrRequesterNotFound
	}
	if err != nil {
		return err
	}

	f := false
	requester.Priority = &f
	return nil
}

// HasActiveStudentEntry: student chỉ được một transaction đang mở
func HasActiveStudentEntry(db *gorm.DB, studentId uint) (bool, error) {
	var count int64
	err := db.Model(&model.QueueEntry{}).
		Where("requester_type = ? AND requester_id = ?", model.RequesterStudent, studentId).
		Where("status IN ?", []string{model.QueueOnQueue, model.QueueOnHold, model.QueueInProcess}).
		Count(&count).Error
	return count > 0, err
}

// CreateQueueEntry cấp số và ghi vé vào CẢ HAI bảng trong một transaction.
// Khóa partition được giữ từ lúc đếm đến khi commit — đây là chỗ duy nhất
// được phép cấp số.
func CreateQueueEntry(db *gorm.DB, requester model.RequesterRef, transactionType, transactionPurpose string, asOf time.Time) (*model.QueueEntry, error) {
	if requester.Priority == nil {
		return nil, ErrPriorityUnset
	}
	priority := *requester.Priority

	mu := LockQueuePartition(asOf, priority)
	defer mu.Unlock()

	queueNumber := GenerateQueueNumber(db, priority, asOf)
	if queueNumberTaken(db, queueNumber, asOf) {
		// không thể xảy ra khi khóa partition đúng; thử lại một lần rồi bỏ
		queueNumber = GenerateQueueNumber(db, priority, asOf)
		if queueNumberTaken(db, queueNumber, asOf) {
			return nil, ErrDuplicateQueueNumber
		}
	}

	entry := model.QueueEntry{
		QueueNumber:        queueNumber,
		RequesterType:      requester.Type,
		RequesterId:        requester.Id,
		Campus:             requester.Campus,
		TransactionType:    transactionType,
		TransactionPurpose: transactionPurpose,
		Priority:           priority,
		Status:             model.QueueOnQueue,
		OnHoldCount:        0,
	}
	entry.CreatedAt = asOf
	entry.UpdatedAt = asOf

	legacy := model.LegacyQueueEntry{
		QueueNumber:     entry.QueueNumber,
		TransactionType: entry.TransactionType,
		Priority:        entry.Priority,
		Status:          entry.Status,
		OnHoldCount:     entry.OnHoldCount,
	}
	legacy.CreatedAt = asOf
	legacy.UpdatedAt = asOf
	switch requester.Type {
	case model.RequesterStudent:
		legacy.StudentId = &requester.Id
	case model.RequesterGuest:
		legacy.GuestId = &requester.Id
	case model.RequesterNewEnrollee:
		legacy.NewEnrolleeId = &requester.Id
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Create(&legacy).Error
	})
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

var terminalStatuses = []string{model.QueueCompleted, model.QueueCancelled, model.QueueCutOff}

func isTerminalStatus(status string) bool {
	for _, s := range terminalStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// updateEntryStatus ghi trạng thái mới vào cả hai bảng trong một transaction.
// Bản legacy match theo queue_number + partition ngày của entry.
func updateEntryStatus(db *gorm.DB, entry *model.QueueEntry, updates map[string]any) error {
	startOfDay, endOfDay := DayWindow(entry.CreatedAt)

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.QueueEntry{}).Where("id = ?", entry.ID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Model(&model.LegacyQueueEntry{}).
			Where("queue_number = ? AND created_at >= ? AND created_at < ?", entry.QueueNumber, startOfDay, endOfDay).
			Updates(updates).Error
	})
}

// ReserveQueueEntry: ON_QUEUE/ON_HOLD -> IN_PROCESS, gắn reservedBy = userId
func ReserveQueueEntry(db *gorm.DB, entryId uint, userId uint) (*model.QueueEntry, error) {
	var entry model.QueueEntry
	if err := db.First(&entry, entryId).Error; err != nil {
		return nil, err
	}

	if entry.Status != model.QueueOnQueue && entry.Status != model.QueueOnHold {
		return nil, ErrInvalidTransition
	}

	updates := map[string]any{"status": model.QueueInProcess, "reserved_by_id": userId}
	if err := updateEntryStatus(db, &entry, updates); err != nil {
		return nil, err
	}
	entry.Status = model.QueueInProcess
	entry.ReservedById = &userId
	return &entry, nil
}

// HoldQueueEntry: IN_PROCESS -> ON_HOLD, tăng onHoldCount, giữ reservedBy
func HoldQueueEntry(db *gorm.DB, entryId uint) (*model.QueueEntry, error) {
	var entry model.QueueEntry
	if err := db.First(&entry, entryId).Error; err != nil {
		return nil, err
	}

	if entry.Status != model.QueueInProcess {
		return nil, ErrInvalidTransition
	}

	updates := map[string]any{"status": model.QueueOnHold, "on_hold_count": entry.OnHoldCount + 1}
	if err := updateEntryStatus(db, &entry, updates); err != nil {
		return nil, err
	}
	entry.Status = model.QueueOnHold
	entry.OnHoldCount++
	return &entry, nil
}

// FinishQueueEntry: non-terminal -> COMPLETED/CANCELLED
func FinishQueueEntry(db *gorm.DB, entryId uint, status string) (*model.QueueEntry, error) {
	if status != model.QueueCompleted && status != model.QueueCancelled {
		return nil, ErrInvalidTransition
	}

	var entry model.QueueEntry
	if err := db.First(&entry, entryId).Error; err != nil {
		return nil, err
	}

	if isTerminalStatus(entry.Status) {
		return nil, ErrInvalidTransition
	}

	if err := updateEntryStatus(db, &entry, map[string]any{"status": status}); err != nil {
		return nil, err
	}
	entry.Status = status
	return &entry, nil
}
