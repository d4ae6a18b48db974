package es

import (
	"RecipeHub/internal/model"
	"time"
)

// RecipeES 写入 ES 的菜谱文档，只索引已通过审核的菜谱
type RecipeES struct {
	ID               uint64    `json:"id"`
	UserID           uint64    `json:"user_id"`
	CategoryID       uint64    `json:"category_id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	AnnouncementText string    `json:"announcement_text"`
	Ingredients      []string  `json:"ingredients"`
	RecipeText       string    `json:"recipe_text"`
	CookingTime      *int      `json:"cooking_time,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewRecipeES 由模型构造文档，ingredients 只保留名称
func NewRecipeES(r *model.Recipe, ingredientNames []string) *RecipeES {
	if ingredientNames == nil {
		ingredientNames = []string{}
	}
	return &RecipeES{
		ID:               r.ID,
		UserID:           r.UserID,
		CategoryID:       r.CategoryID,
		Name:             r.Name,
		Slug:             r.Slug,
		AnnouncementText: r.AnnouncementText,
		Ingredients:      ingredientNames,
		RecipeText:       r.RecipeText,
		CookingTime:      r.CookingTime,
		CreatedAt:        r.CreatedAt,
	}
}
