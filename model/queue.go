package model

import "time"

const (
	QueueOnQueue   = "ON_QUEUE"
	QueueInProcess = "IN_PROCESS"
	QueueOnHold    = "ON_HOLD"
	QueueCompleted = "COMPLETED"
	QueueCancelled = "CANCELLED"
	QueueCutOff    = "CUT_OFF"
)

const (
	RequesterStudent     = "STUDENT"
	RequesterGuest       = "GUEST"
	RequesterNewEnrollee = "NEW_ENROLLEE"
)

// QueueEntry là bảng chính (NF1). Requester lưu dạng tagged union:
// RequesterType + RequesterId.
type QueueEntry struct {
	DTO
	QueueNumber        string `gorm:"size:10;not null;index:idx_queue_entries_day_number" json:"queueNumber"`
	RequesterType      string `gorm:"size:20;not null" json:"requesterType"`
	RequesterId        uint   `gorm:"not null" json:"requesterId"`
	Campus             string `gorm:"size:50;index" json:"campus"`
	TransactionType    string `gorm:"size:100;not null" json:"transactionType"`
	TransactionPurpose string `gorm:"size:100" json:"transactionPurpose"`
	Priority           bool   `gorm:"not null;index" json:"priority"`
	Status             string `gorm:"size:20;not null;default:'ON_QUEUE';index" json:"status"`
	OnHoldCount        int    `gorm:"not null;default:0" json:"onHoldCount"`
	ReservedById       *uint  `json:"reservedById"`
	ReservedBy         *User  `gorm:"foreignKey:ReservedById" json:"-"`
}

// LegacyQueueEntry giữ tương thích cho consumer cũ: requester là 3 cột FK
// nullable thay vì tagged union. Luôn ghi cùng transaction với QueueEntry.
type LegacyQueueEntry struct {
	DTO
	QueueNumber     string       `gorm:"size:10;not null" json:"queueNumber"`
	TransactionType string       `gorm:"size:100;not null" json:"transactionType"`
	Priority        bool         `gorm:"not null" json:"priority"`
	Status          string       `gorm:"size:20;not null;default:'ON_QUEUE'" json:"status"`
	OnHoldCount     int          `gorm:"not null;default:0" json:"onHoldCount"`
	ReservedById    *uint        `json:"reservedById"`
	StudentId       *uint        `json:"studentId"`
	GuestId         *uint        `json:"guestId"`
	NewEnrolleeId   *uint        `json:"newEnrolleeId"`
	Student         *Student     `gorm:"foreignKey:StudentId" json:"-"`
	Guest           *Guest       `gorm:"foreignKey:GuestId" json:"-"`
	NewEnrollee     *NewEnrollee `gorm:"foreignKey:NewEnrolleeId" json:"-"`
}

func (LegacyQueueEntry) TableName() string {
	return "legacy_queue_entries"
}

type QueueRequestInput struct {
	QrId               string `json:"qrId" validate:"required,uuid4"`
	TransactionType    string `json:"transactionType" validate:"required,max=100"`
	TransactionPurpose string `json:"transactionPurpose" validate:"omitempty,max=100"`
}

type FilterQueueInput struct {
	Pagination
	Status    string     `json:"status" validate:"omitempty,oneof=ON_QUEUE IN_PROCESS ON_HOLD COMPLETED CANCELLED CUT_OFF"`
	Priority  *bool      `json:"priority" validate:"omitempty"`
	Campus    string     `json:"campus" validate:"omitempty,max=50"`
	StartDate *time.Time `json:"startDate" validate:"omitempty"`
	EndDate   *time.Time `json:"endDate" validate:"omitempty"`
}

type PublicQueueItem struct {
	QueueNumber string `json:"queue_number"`
	CreatedAt   string `json:"created_at"`
}

type LiveQueueItem struct {
	Window      *uint  `json:"window"`
	QueueNumber string `json:"queue_number"`
	Status      string `json:"status"`
}
