package model

import "time"

type UserRole string

const (
	Admin   UserRole = "admin"
	Student UserRole = "student"
)

// swagger:model User
type User struct {
	BaseModel
	Username string     `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email    string     `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password string     `gorm:"size:255;not null" json:"-"`
	Role     UserRole   `gorm:"size:20;default:'student'" json:"role"`
	RealName string     `gorm:"size:50" json:"realName"`
	LastSeen *time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
