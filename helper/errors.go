package helper

import "errors"

var (
	// ValidationError: requester chưa có cờ priority — caller phải default trước
	ErrPriorityUnset = errors.New("requester priority is not set")
	// NotFoundError: không tìm thấy requester theo qrId
	ErrRequesterNotFound = errors.New("qr id not found")
	// ConflictError: trùng số thứ tự dù đã serialize — lỗi nội bộ
	ErrDuplicateQueueNumber = errors.New("duplicate queue number for partition")
	// Student chỉ được một transaction đang mở
	ErrActiveTransactionExists = errors.New("requester already has an active transaction")
	// Chuyển trạng thái không hợp lệ theo state machine
	ErrInvalidTransition = errors.New("invalid queue status transition")
	// Campus đã đóng cổng nhận hàng đợi
	ErrCampusCutoff = errors.New("queue requests are closed due to cutoff")
)
