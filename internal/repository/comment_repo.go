package repository

import (
	"RecipeHub/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CommentRepo interface {
	GetCommentByID(ctx context.Context, id uint64) (*model.Comment, error)
	ListAll(ctx context.Context) ([]*model.Comment, error)
	ListByRecipe(ctx context.Context, recipeID uint64, activeOnly bool) ([]*model.Comment, error)
	ListByUser(ctx context.Context, userID uint64) ([]*model.Comment, error)
	CreateComment(ctx context.Context, comment *model.Comment) error
	UpdateText(ctx context.Context, id uint64, text string) error
	SetActive(ctx context.Context, id uint64, active bool) error
	DeleteComment(ctx context.Context, id uint64) error
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

func (s *CommentRepoImpl) GetCommentByID(ctx context.Context, id uint64) (*model.Comment, error) {
	var comment model.Comment
	err := s.db.WithContext(ctx).Preload("User").Preload("Recipe").First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentRepoImpl) ListAll(ctx context.Context) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := s.db.WithContext(ctx).Preload("User").Preload("Recipe").
		Order("created_at DESC").Find(&comments).Error
	return comments, err
}

func (s *CommentRepoImpl) ListByRecipe(ctx context.Context, recipeID uint64, activeOnly bool) ([]*model.Comment, error) {
	tx := s.db.WithContext(ctx).Preload("User").Where("recipe_id = ?", recipeID)
	if activeOnly {
		tx = tx.Where("active = ?", true)
	}
	var comments []*model.Comment
	err := tx.Order("created_at ASC").Find(&comments).Error
	return comments, err
}

func (s *CommentRepoImpl) ListByUser(ctx context.Context, userID uint64) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := s.db.WithContext(ctx).Preload("User").Preload("Recipe").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&comments).Error
	return comments, err
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Omit("User", "Recipe").Create(comment).Error
}

func (s *CommentRepoImpl) UpdateText(ctx context.Context, id uint64, text string) error {
	return s.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Update("text", text).Error
}

func (s *CommentRepoImpl) SetActive(ctx context.Context, id uint64, active bool) error {
	return s.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Update("active", active).Error
}

func (s *CommentRepoImpl) DeleteComment(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Comment{}, id).Error
}
