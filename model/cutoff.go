package model

import "time"

// CutoffSchedule: giờ đóng cổng theo campus. Campus rỗng = áp dụng toàn bộ.
// CutoffTime lưu UTC; IsCutoff chỉ được scheduler bật một lần duy nhất.
type CutoffSchedule struct {
	DTO
	Campus     string    `gorm:"size:50;index" json:"campus"`
	CutoffTime time.Time `gorm:"not null;index" json:"cutoffTime"`
	IsCutoff   bool      `gorm:"not null;default:false" json:"isCutoff"`
}

type CreateCutoffScheduleInput struct {
	Campus     string `json:"campus" validate:"omitempty,max=50"`
	CutoffTime string `json:"cutoffTime" validate:"required"`
}

type FilterCutoffInput struct {
	Pagination
	Campus   *string `json:"campus"`
	IsCutoff *bool   `json:"isCutoff"`
}
