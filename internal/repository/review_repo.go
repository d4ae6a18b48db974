package repository

import (
	"RecipeHub/internal/model"
	"context"
	stderrors "errors"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepo interface {
	UpsertReview(ctx context.Context, review *model.Review) (bool, error)
	GetAverage(ctx context.Context, recipeID uint64) (*model.RecipeRating, error)
	ListByRecipe(ctx context.Context, recipeID uint64) ([]*model.Review, error)
	AllAverages(ctx context.Context) ([]*model.RecipeRating, error)
}

type ReviewRepoImpl struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) ReviewRepo {
	return &ReviewRepoImpl{db: db}
}

// UpsertReview 同一用户对同一菜谱只保留一条评分，返回此前是否已存在
func (s *ReviewRepoImpl) UpsertReview(ctx context.Context, review *model.Review) (bool, error) {
	var existed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prev model.Review
		err := tx.Where("user_id = ? AND recipe_id = ?", review.UserID, review.RecipeID).
			Take(&prev).Error
		switch {
		case err == nil:
			existed = true
		case stderrors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		now := time.Now()
		review.UpdatedAt = now
		if !existed {
			review.CreatedAt = now
		}
		return tx.Omit("User").Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
		}).Create(review).Error
	})
	if err != nil {
		return false, errors.Wrap(err, "upsert review")
	}
	return existed, nil
}

// GetAverage 计算单个菜谱的平均分，无评分时 Count 为 0
func (s *ReviewRepoImpl) GetAverage(ctx context.Context, recipeID uint64) (*model.RecipeRating, error) {
	rating := &model.RecipeRating{RecipeID: recipeID}
	err := s.db.WithContext(ctx).Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("recipe_id = ?", recipeID).
		Row().Scan(&rating.Average, &rating.Count)
	if err != nil {
		return nil, errors.Wrap(err, "average rating")
	}
	return rating, nil
}

func (s *ReviewRepoImpl) ListByRecipe(ctx context.Context, recipeID uint64) ([]*model.Review, error) {
	var reviews []*model.Review
	err := s.db.WithContext(ctx).Preload("User").
		Where("recipe_id = ?", recipeID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// AllAverages 按菜谱分组的平均分，用于重建排行榜
func (s *ReviewRepoImpl) AllAverages(ctx context.Context) ([]*model.RecipeRating, error) {
	var ratings []*model.RecipeRating
	err := s.db.WithContext(ctx).Model(&model.Review{}).
		Select("recipe_id, AVG(rating) AS average, COUNT(*) AS count").
		Group("recipe_id").
		Scan(&ratings).Error
	if err != nil {
		return nil, errors.Wrap(err, "all averages")
	}
	return ratings, nil
}
