package model

import (
	"time"
)

type Comment struct {
	ID        uint64    `gorm:"primaryKey"`
	RecipeID  uint64    `gorm:"not null;index:idx_comment_recipe_id"`
	UserID    uint64    `gorm:"not null;index:idx_comment_user_id"`
	Text      string    `gorm:"type:text;not null"`
	Active    bool      `gorm:"type:tinyint(1);not null;default:1"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `gorm:"foreignKey:UserID;references:ID"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;references:ID"`
}

func (Comment) TableName() string {
	return "comments"
}
