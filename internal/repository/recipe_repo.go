package repository

import (
	"RecipeHub/internal/model"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// RecipeQuery 列表查询条件，Statuses 为空表示不按状态过滤
type RecipeQuery struct {
	Statuses       []model.ModerationStatus
	Search         string
	CategoryName   string
	CookingTimeGte *int
	Ordering       string
	Offset         int
	Limit          int
}

// recipeOrderings 允许的排序参数到 SQL 的映射
var recipeOrderings = map[string]string{
	"name":          "recipes.name ASC",
	"-name":         "recipes.name DESC",
	"cooking_time":  "recipes.cooking_time ASC",
	"-cooking_time": "recipes.cooking_time DESC",
	"servings":      "recipes.servings ASC",
	"-servings":     "recipes.servings DESC",
	"calories":      "recipes.calories ASC",
	"-calories":     "recipes.calories DESC",
	"created_at":    "recipes.created_at ASC",
	"-created_at":   "recipes.created_at DESC",
}

// ValidOrdering 判断排序参数是否受支持
func ValidOrdering(ordering string) bool {
	_, ok := recipeOrderings[ordering]
	return ok
}

type RecipeRepo interface {
	GetRecipeByID(ctx context.Context, id uint64) (*model.Recipe, error)
	GetRecipeBySlug(ctx context.Context, slug string, statuses []model.ModerationStatus) (*model.Recipe, error)
	GetRecipesByIDs(ctx context.Context, ids []uint64, statuses []model.ModerationStatus) ([]*model.Recipe, error)
	ListRecipes(ctx context.Context, q *RecipeQuery) ([]*model.Recipe, int64, error)
	ListRecipesByUser(ctx context.Context, userID uint64, statuses []model.ModerationStatus) ([]*model.Recipe, error)
	ListRecipesByStatus(ctx context.Context, status model.ModerationStatus) ([]*model.Recipe, error)
	ListRecipesByIngredients(ctx context.Context, names []string, statuses []model.ModerationStatus) ([]*model.Recipe, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	CreateRecipe(ctx context.Context, recipe *model.Recipe) error
	UpdateRecipe(ctx context.Context, recipe *model.Recipe) error
	UpdateRecipeStatus(ctx context.Context, id uint64, status model.ModerationStatus) error
	UpdateRecipePhoto(ctx context.Context, id uint64, photo string) error
	DeleteRecipe(ctx context.Context, id uint64) error
}

type RecipeRepoImpl struct {
	db *gorm.DB
}

func NewRecipeRepo(db *gorm.DB) RecipeRepo {
	return &RecipeRepoImpl{db: db}
}

func (s *RecipeRepoImpl) base(ctx context.Context, statuses []model.ModerationStatus) *gorm.DB {
	tx := s.db.WithContext(ctx).Model(&model.Recipe{}).Preload("User").Preload("Category")
	if len(statuses) > 0 {
		tx = tx.Where("recipes.moderation_status IN ?", statuses)
	}
	return tx
}

func (s *RecipeRepoImpl) GetRecipeByID(ctx context.Context, id uint64) (*model.Recipe, error) {
	var recipe model.Recipe
	err := s.base(ctx, nil).First(&recipe, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *RecipeRepoImpl) GetRecipeBySlug(ctx context.Context, slug string, statuses []model.ModerationStatus) (*model.Recipe, error) {
	var recipe model.Recipe
	err := s.base(ctx, statuses).Where("recipes.slug = ?", slug).First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetRecipesByIDs 批量查询，不保证返回顺序
func (s *RecipeRepoImpl) GetRecipesByIDs(ctx context.Context, ids []uint64, statuses []model.ModerationStatus) ([]*model.Recipe, error) {
	if len(ids) == 0 {
		return []*model.Recipe{}, nil
	}
	var recipes []*model.Recipe
	err := s.base(ctx, statuses).Where("recipes.id IN ?", ids).Find(&recipes).Error
	return recipes, err
}

func (s *RecipeRepoImpl) ListRecipes(ctx context.Context, q *RecipeQuery) ([]*model.Recipe, int64, error) {
	tx := s.base(ctx, q.Statuses)

	if q.Search != "" {
		like := "%" + escapeLike(q.Search) + "%"
		tx = tx.Where("(recipes.name LIKE ? OR recipes.ingredients LIKE ? OR recipes.recipe_text LIKE ?)", like, like, like)
	}
	if q.CategoryName != "" {
		tx = tx.Joins("JOIN categories ON categories.id = recipes.category_id").
			Where("categories.name = ?", q.CategoryName)
	}
	if q.CookingTimeGte != nil {
		tx = tx.Where("recipes.cooking_time >= ?", *q.CookingTimeGte)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := recipeOrderings[q.Ordering]
	if !ok {
		order = recipeOrderings["name"]
	}

	var recipes []*model.Recipe
	err := tx.Order(order).Order("recipes.id ASC").
		Offset(q.Offset).Limit(q.Limit).
		Find(&recipes).Error
	return recipes, total, err
}

func (s *RecipeRepoImpl) ListRecipesByUser(ctx context.Context, userID uint64, statuses []model.ModerationStatus) ([]*model.Recipe, error) {
	var recipes []*model.Recipe
	err := s.base(ctx, statuses).Where("recipes.user_id = ?", userID).
		Order("recipes.name ASC").Find(&recipes).Error
	return recipes, err
}

func (s *RecipeRepoImpl) ListRecipesByStatus(ctx context.Context, status model.ModerationStatus) ([]*model.Recipe, error) {
	var recipes []*model.Recipe
	err := s.base(ctx, []model.ModerationStatus{status}).
		Order("recipes.created_at ASC").Find(&recipes).Error
	return recipes, err
}

// ListRecipesByIngredients 返回包含任意一个食材的菜谱，names 为空时返回全部
func (s *RecipeRepoImpl) ListRecipesByIngredients(ctx context.Context, names []string, statuses []model.ModerationStatus) ([]*model.Recipe, error) {
	tx := s.base(ctx, statuses)
	if len(names) > 0 {
		conds := make([]string, 0, len(names))
		args := make([]any, 0, len(names))
		for _, n := range names {
			conds = append(conds, "recipes.ingredients LIKE ?")
			args = append(args, "%"+escapeLike(n)+"%")
		}
		tx = tx.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
	var recipes []*model.Recipe
	err := tx.Order("recipes.name ASC").Find(&recipes).Error
	return recipes, err
}

func (s *RecipeRepoImpl) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Recipe{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// CreateRecipe slug 冲突返回 ErrDuplicateKey
func (s *RecipeRepoImpl) CreateRecipe(ctx context.Context, recipe *model.Recipe) error {
	err := s.db.WithContext(ctx).Omit("User", "Category").Create(recipe).Error
	if isDuplicateKey(err) {
		return ErrDuplicateKey
	}
	return err
}

// UpdateRecipe 只更新内容字段，slug、owner、状态不在此处修改
func (s *RecipeRepoImpl) UpdateRecipe(ctx context.Context, recipe *model.Recipe) error {
	return s.db.WithContext(ctx).Model(&model.Recipe{ID: recipe.ID}).
		Select("category_id", "name", "announcement_text", "ingredients", "recipe_text", "servings", "cooking_time", "calories").
		Updates(recipe).Error
}

func (s *RecipeRepoImpl) UpdateRecipeStatus(ctx context.Context, id uint64, status model.ModerationStatus) error {
	return s.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).
		Update("moderation_status", status).Error
}

func (s *RecipeRepoImpl) UpdateRecipePhoto(ctx context.Context, id uint64, photo string) error {
	return s.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).
		Update("photo", photo).Error
}

// DeleteRecipe 同时删除关联的评分、评论与收藏
func (s *RecipeRepoImpl) DeleteRecipe(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Recipe{}, id).Error
	})
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
