package domain

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Username   string         `gorm:"column:username;unique;not null" json:"username"`
	Email      string         `gorm:"column:email;unique;not null" json:"email"`
	Password   string         `gorm:"column:password_hash;not null" json:"-"`
	IsVerified bool           `gorm:"column:is_verified;default:false" json:"is_verified"`
	Role       string         `gorm:"column:role;default:customer" json:"role"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
