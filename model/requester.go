package model

// Student, Guest và NewEnrollee đều có thể xếp hàng; mỗi loại một bảng riêng.
type Student struct {
	DTO
	QrId      string  `gorm:"size:36;uniqueIndex;not null" json:"qrId"`
	Name      string  `gorm:"not null" validate:"required" json:"name"`
	Email     string  `gorm:"uniqueIndex;not null" validate:"required,email" json:"email"`
	StudentNo string  `gorm:"size:20" json:"studentNo"`
	Campus    string  `gorm:"size:50" json:"campus"`
	Priority  *bool   `json:"priority"`
	QrImgUrl  *string `json:"qrImgUrl"`
}

type Guest struct {
	DTO
	QrId     string `gorm:"size:36;uniqueIndex;not null" json:"qrId"`
	Name     string `gorm:"not null" validate:"required" json:"name"`
	Email    string `json:"email"`
	Campus   string `gorm:"size:50" json:"campus"`
	Priority *bool  `json:"priority"`
}

type NewEnrollee struct {
	DTO
	QrId     string `gorm:"size:36;uniqueIndex;not null" json:"qrId"`
	Name     string `gorm:"not null" validate:"required" json:"name"`
	Email    string `json:"email"`
	Campus   string `gorm:"size:50" json:"campus"`
	Priority *bool  `json:"priority"`
}

// RequesterRef: handle đã resolve của người xếp hàng, dùng chung cho cả 3 loại
type RequesterRef struct {
	Type     string
	Id       uint
	Name     string
	Email    string
	Campus   string
	Priority *bool
}

func (s *Student) Ref() RequesterRef {
	return RequesterRef{Type: RequesterStudent, Id: s.ID, Name: s.Name, Email: s.Email, Campus: s.Campus, Priority: s.Priority}
}

func (g *Guest) Ref() RequesterRef {
	return RequesterRef{Type: RequesterGuest, Id: g.ID, Name: g.Name, Email: g.Email, Campus: g.Campus, Priority: g.Priority}
}

func (n *NewEnrollee) Ref() RequesterRef {
	return RequesterRef{Type: RequesterNewEnrollee, Id: n.ID, Name: n.Name, Email: n.Email, Campus: n.Campus, Priority: n.Priority}
}

type RegisterStudentInput struct {
	Name      string `json:"name" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	StudentNo string `json:"studentNo" validate:"omitempty,max=20"`
	Campus    string `json:"campus" validate:"omitempty,max=50"`
	Priority  *bool  `json:"priority" validate:"omitempty"`
}

type RegisterGuestInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"omitempty,email"`
	Campus   string `json:"campus" validate:"omitempty,max=50"`
	Priority *bool  `json:"priority" validate:"omitempty"`
}

type RecoverQRInput struct {
	Email string `json:"email" validate:"required,email"`
}
