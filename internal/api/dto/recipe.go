package dto

import (
	"RecipeHub/internal/model"
	"time"
)

type RecipeCreateDTO struct {
	Name             string `json:"name" validate:"required,min=1,max=100"`
	Category         uint64 `json:"category" validate:"required"`
	AnnouncementText string `json:"announcement_text"`
	Ingredients      string `json:"ingredients"`
	RecipeText       string `json:"recipe_text" validate:"required"`
	Servings         int    `json:"servings" validate:"gte=1,lte=100"`
	CookingTime      *int   `json:"cooking_time" validate:"omitempty,gte=1"`
	Calories         *int   `json:"calories" validate:"omitempty,gte=0"`
}

// RecipeUpdateDTO 字段为 nil 表示不修改
type RecipeUpdateDTO struct {
	Name             *string `json:"name" validate:"omitempty,min=1,max=100"`
	Category         *uint64 `json:"category" validate:"omitempty,gte=1"`
	AnnouncementText *string `json:"announcement_text"`
	Ingredients      *string `json:"ingredients"`
	RecipeText       *string `json:"recipe_text" validate:"omitempty,min=1"`
	Servings         *int    `json:"servings" validate:"omitempty,gte=1,lte=100"`
	CookingTime      *int    `json:"cooking_time" validate:"omitempty,gte=1"`
	Calories         *int    `json:"calories" validate:"omitempty,gte=0"`
}

// ToUpdate PUT 请求按全量更新处理
func (d *RecipeCreateDTO) ToUpdate() *RecipeUpdateDTO {
	return &RecipeUpdateDTO{
		Name:             &d.Name,
		Category:         &d.Category,
		AnnouncementText: &d.AnnouncementText,
		Ingredients:      &d.Ingredients,
		RecipeText:       &d.RecipeText,
		Servings:         &d.Servings,
		CookingTime:      d.CookingTime,
		Calories:         d.Calories,
	}
}

// RecipeDTO 普通用户可见的菜谱字段
type RecipeDTO struct {
	Username         string    `json:"user"`
	CategoryID       uint64    `json:"category"`
	CategoryName     string    `json:"category_name"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	AnnouncementText string    `json:"announcement_text"`
	Photo            string    `json:"photo"`
	Ingredients      string    `json:"ingredients"`
	RecipeText       string    `json:"recipe_text"`
	Servings         int       `json:"servings"`
	CookingTime      *int      `json:"cooking_time"`
	Calories         *int      `json:"calories"`
	CreatedAt        time.Time `json:"created_at"`
}

// RecipeStaffDTO 管理视图，多出 id、作者 id 与审核状态
type RecipeStaffDTO struct {
	ID               uint64                 `json:"id"`
	UserID           uint64                 `json:"user_id"`
	Username         string                 `json:"user"`
	CategoryID       uint64                 `json:"category"`
	CategoryName     string                 `json:"category_name"`
	Name             string                 `json:"name"`
	Slug             string                 `json:"slug"`
	AnnouncementText string                 `json:"announcement_text"`
	Photo            string                 `json:"photo"`
	Ingredients      string                 `json:"ingredients"`
	RecipeText       string                 `json:"recipe_text"`
	Servings         int                    `json:"servings"`
	CookingTime      *int                   `json:"cooking_time"`
	Calories         *int                   `json:"calories"`
	ModerationStatus model.ModerationStatus `json:"moderation_status"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// RecipeDetailDTO 详情页返回
type RecipeDetailDTO struct {
	Recipe        any      `json:"recipe"`
	AverageRating *float64 `json:"average_rating"`
	IsFavorited   bool     `json:"is_favorited"`
	Views         int64    `json:"views"`
}

// RecipeListQuery 列表查询参数
type RecipeListQuery struct {
	Search         string
	Ordering       string
	Category       string
	CookingTimeGte *int
	Page           int
	PageSize       int
}

type RecipeBuilderDTO struct {
	Recipes any `json:"recipes"`
}

type ModerateDTO struct {
	Status string `json:"status" validate:"required"`
}

type ModerateResultDTO struct {
	ID     uint64 `json:"id"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
}

type PhotoDTO struct {
	Photo string `json:"photo"`
}
