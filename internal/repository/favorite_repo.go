package repository

import (
	"RecipeHub/internal/model"
	"context"

	"gorm.io/gorm"
)

type FavoriteRepo interface {
	Create(ctx context.Context, userID, recipeID uint64) error
	Delete(ctx context.Context, userID, recipeID uint64) (int64, error)
	Exists(ctx context.Context, userID, recipeID uint64) (bool, error)
	ListRecipeIDsByUser(ctx context.Context, userID uint64) ([]uint64, error)
}

type FavoriteRepoImpl struct {
	db *gorm.DB
}

func NewFavoriteRepo(db *gorm.DB) FavoriteRepo {
	return &FavoriteRepoImpl{db: db}
}

// Create 重复收藏返回 ErrDuplicateKey
func (s *FavoriteRepoImpl) Create(ctx context.Context, userID, recipeID uint64) error {
	err := s.db.WithContext(ctx).Create(&model.Favorite{UserID: userID, RecipeID: recipeID}).Error
	if isDuplicateKey(err) {
		return ErrDuplicateKey
	}
	return err
}

func (s *FavoriteRepoImpl) Delete(ctx context.Context, userID, recipeID uint64) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&model.Favorite{})
	return res.RowsAffected, res.Error
}

func (s *FavoriteRepoImpl) Exists(ctx context.Context, userID, recipeID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

// ListRecipeIDsByUser 按收藏时间倒序
func (s *FavoriteRepoImpl) ListRecipeIDsByUser(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("recipe_id", &ids).Error
	return ids, err
}
