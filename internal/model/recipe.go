package model

import (
	"time"
)

type Recipe struct {
	ID               uint64           `gorm:"primaryKey"`
	UserID           uint64           `gorm:"not null;index:idx_recipe_user_id"`
	CategoryID       uint64           `gorm:"not null;index:idx_recipe_category_id"`
	Name             string           `gorm:"type:varchar(100);not null;index:idx_recipe_name"`
	Slug             string           `gorm:"type:varchar(255);not null;uniqueIndex:idx_recipe_slug"`
	AnnouncementText string           `gorm:"type:text"`
	Photo            string           `gorm:"type:varchar(255);not null;default:''"`
	Ingredients      string           `gorm:"type:text"`
	RecipeText       string           `gorm:"type:text"`
	Servings         int              `gorm:"not null"`
	CookingTime      *int             `gorm:"index:idx_recipe_cooking_time"`
	Calories         *int
	ModerationStatus ModerationStatus `gorm:"type:varchar(20);not null;default:'in_process';index:idx_recipe_status"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	User     User     `gorm:"foreignKey:UserID;references:ID"`
	Category Category `gorm:"foreignKey:CategoryID;references:ID"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// IsOwnedBy 判断菜谱是否属于该用户
func (r *Recipe) IsOwnedBy(userID uint64) bool {
	return userID != 0 && r.UserID == userID
}
