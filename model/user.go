package model

// User là tài khoản nhân viên quầy (cashier/window staff).
type User struct {
	DTO
	Username  string `gorm:"uniqueIndex;not null" validate:"required" json:"username"`
	Password  string `gorm:"not null" json:"-"`
	FullName  string `json:"fullName"`
	Role      string `gorm:"size:20;not null" json:"role"`
	WindowNum *uint  `json:"windowNum"`
	IsOnline  bool   `gorm:"default:false" json:"isOnline"`
	IsActive  bool   `gorm:"default:true" json:"isActive"`
}

type Users []User

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateUserInput struct {
	Username  string `json:"username" validate:"required,min=4"`
	Password  string `json:"password" validate:"required,min=6"`
	FullName  string `json:"fullName" validate:"omitempty"`
	Role      string `json:"role" validate:"required,oneof=ADMIN CASHIER"`
	WindowNum *uint  `json:"windowNum" validate:"omitempty,gt=0"`
}

type FilterUser struct {
	Pagination
	SearchKey string `json:"searchKey"`
	Active    *bool  `json:"active"`
}
