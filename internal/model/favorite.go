package model

import (
	"time"
)

type Favorite struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	RecipeID  uint64    `gorm:"primaryKey;index:idx_favorite_recipe_id" json:"recipeId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Favorite) TableName() string {
	return "recipe_favorites"
}
