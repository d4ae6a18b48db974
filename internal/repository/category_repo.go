package repository

import (
	"RecipeHub/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CategoryRepo interface {
	GetCategoryByID(ctx context.Context, id uint64) (*model.Category, error)
	ListCategories(ctx context.Context, offset, limit int) ([]*model.Category, int64, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	UpdateName(ctx context.Context, id uint64, name string) error
	DeleteCategory(ctx context.Context, id uint64) error
	CountRecipes(ctx context.Context, id uint64) (int64, error)
}

type CategoryRepoImpl struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepo {
	return &CategoryRepoImpl{db: db}
}

func (s *CategoryRepoImpl) GetCategoryByID(ctx context.Context, id uint64) (*model.Category, error) {
	var category model.Category
	err := s.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryRepoImpl) ListCategories(ctx context.Context, offset, limit int) ([]*model.Category, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Category{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var categories []*model.Category
	err := s.db.WithContext(ctx).Order("name ASC").Order("id ASC").
		Offset(offset).Limit(limit).Find(&categories).Error
	return categories, total, err
}

func (s *CategoryRepoImpl) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Category{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (s *CategoryRepoImpl) CreateCategory(ctx context.Context, category *model.Category) error {
	err := s.db.WithContext(ctx).Create(category).Error
	if isDuplicateKey(err) {
		return ErrDuplicateKey
	}
	return err
}

// UpdateName slug 创建后不再变化
func (s *CategoryRepoImpl) UpdateName(ctx context.Context, id uint64, name string) error {
	return s.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Update("name", name).Error
}

func (s *CategoryRepoImpl) DeleteCategory(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Category{}, id).Error
}

func (s *CategoryRepoImpl) CountRecipes(ctx context.Context, id uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Recipe{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}
