package service

import (
	"RecipeHub/internal/api/dto"
	"RecipeHub/internal/model"
	"RecipeHub/internal/pkg/consts"
	"RecipeHub/internal/pkg/util"
	"RecipeHub/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
)

type CategoryService interface {
	ListCategories(ctx context.Context, page, pageSize int) ([]*dto.CategoryDTO, int64, error)
	GetCategory(ctx context.Context, id uint64) (*dto.CategoryDTO, error)
	CreateCategory(ctx context.Context, p Principal, req *dto.CategoryCreateDTO) (*dto.CategoryDTO, error)
	UpdateCategory(ctx context.Context, p Principal, id uint64, req *dto.CategoryCreateDTO) (*dto.CategoryDTO, error)
	DeleteCategory(ctx context.Context, p Principal, id uint64) error
}

type categoryServiceImpl struct {
	categoryRepo repository.CategoryRepo
	baseURL      string
}

func NewCategoryService(categoryRepo repository.CategoryRepo, baseURL string) CategoryService {
	return &categoryServiceImpl{
		categoryRepo: categoryRepo,
		baseURL:      strings.TrimRight(baseURL, "/"),
	}
}

func (s *categoryServiceImpl) toDTO(c *model.Category) *dto.CategoryDTO {
	return &dto.CategoryDTO{
		ID:   c.ID,
		URL:  fmt.Sprintf("%s/categories/%d", s.baseURL, c.ID),
		Name: c.Name,
		Slug: c.Slug,
	}
}

// ListCategories pageSize 默认 5，最大 30
func (s *categoryServiceImpl) ListCategories(ctx context.Context, page, pageSize int) ([]*dto.CategoryDTO, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = consts.CategoryPageSize
	}
	if pageSize > consts.CategoryMaxPageSize {
		pageSize = consts.CategoryMaxPageSize
	}
	categories, total, err := s.categoryRepo.ListCategories(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*dto.CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, s.toDTO(c))
	}
	return out, total, nil
}

func (s *categoryServiceImpl) GetCategory(ctx context.Context, id uint64) (*dto.CategoryDTO, error) {
	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return s.toDTO(category), nil
}

func (s *categoryServiceImpl) CreateCategory(ctx context.Context, p Principal, req *dto.CategoryCreateDTO) (*dto.CategoryDTO, error) {
	if !p.Staff {
		return nil, ErrPermissionDenied
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}
	slug, err := util.UniqueSlug(util.Slugify(req.Name), func(candidate string) (bool, error) {
		return s.categoryRepo.SlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}
	category := &model.Category{Name: req.Name, Slug: slug}
	if err = s.categoryRepo.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrCategoryExist
		}
		return nil, err
	}
	return s.toDTO(category), nil
}

// UpdateCategory 只修改名称，slug 保持创建时的值
func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, p Principal, id uint64, req *dto.CategoryCreateDTO) (*dto.CategoryDTO, error) {
	if !p.Staff {
		return nil, ErrPermissionDenied
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	if err = s.categoryRepo.UpdateName(ctx, id, req.Name); err != nil {
		return nil, err
	}
	category.Name = req.Name
	return s.toDTO(category), nil
}

func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, p Principal, id uint64) error {
	if !p.Staff {
		return ErrPermissionDenied
	}
	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	count, err := s.categoryRepo.CountRecipes(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.categoryRepo.DeleteCategory(ctx, id)
}
