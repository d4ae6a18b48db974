package model

import (
	"time"
)

type User struct {
	ID        uint64    `gorm:"primaryKey"`
	Username  string    `gorm:"type:varchar(150);not null;uniqueIndex:idx_username"`
	Email     string    `gorm:"type:varchar(254);not null;default:''"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
