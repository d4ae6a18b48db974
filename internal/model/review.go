package model

import (
	"time"
)

type Review struct {
	ID        uint64    `gorm:"primaryKey"`
	RecipeID  uint64    `gorm:"not null;uniqueIndex:idx_review_user_recipe,priority:2;index:idx_review_recipe_id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_review_user_recipe,priority:1"`
	Rating    float64   `gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (Review) TableName() string {
	return "reviews"
}

// RecipeRating 单个菜谱的评分聚合结果
type RecipeRating struct {
	RecipeID uint64
	Average  float64
	Count    int64
}
