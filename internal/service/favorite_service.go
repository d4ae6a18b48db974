package service

import (
	"RecipeHub/internal/model"
	"RecipeHub/internal/repository"
	"context"
	"errors"
)

type FavoriteService interface {
	AddFavorite(ctx context.Context, p Principal, slug string) error
	RemoveFavorite(ctx context.Context, p Principal, slug string) error
	ToggleFavorite(ctx context.Context, p Principal, slug string) (bool, error)
	RemoveSaved(ctx context.Context, p Principal, slug string) (bool, error)
	IsFavorited(ctx context.Context, userID, recipeID uint64) (bool, error)
	ListSaved(ctx context.Context, p Principal) ([]any, error)
}

type favoriteServiceImpl struct {
	favoriteRepo repository.FavoriteRepo
	recipeRepo   repository.RecipeRepo
	projector    *RecipeProjector
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepo, recipeRepo repository.RecipeRepo, projector *RecipeProjector) FavoriteService {
	return &favoriteServiceImpl{
		favoriteRepo: favoriteRepo,
		recipeRepo:   recipeRepo,
		projector:    projector,
	}
}

func (s *favoriteServiceImpl) target(ctx context.Context, p Principal, slug string) (*model.Recipe, error) {
	recipe, err := visibleRecipe(ctx, s.recipeRepo, p, slug)
	if err != nil {
		return nil, err
	}
	if recipe.IsOwnedBy(p.UserID) {
		return nil, ErrSelfFavorite
	}
	return recipe, nil
}

// AddFavorite 已收藏时返回错误而不是静默成功
func (s *favoriteServiceImpl) AddFavorite(ctx context.Context, p Principal, slug string) error {
	recipe, err := s.target(ctx, p, slug)
	if err != nil {
		return err
	}
	err = s.favoriteRepo.Create(ctx, p.UserID, recipe.ID)
	if errors.Is(err, repository.ErrDuplicateKey) {
		return ErrAlreadyFavorited
	}
	return err
}

// RemoveFavorite 未收藏时返回错误
func (s *favoriteServiceImpl) RemoveFavorite(ctx context.Context, p Principal, slug string) error {
	recipe, err := s.target(ctx, p, slug)
	if err != nil {
		return err
	}
	rows, err := s.favoriteRepo.Delete(ctx, p.UserID, recipe.ID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFavorited
	}
	return nil
}

// ToggleFavorite 无条件翻转收藏状态，返回翻转后是否已收藏
func (s *favoriteServiceImpl) ToggleFavorite(ctx context.Context, p Principal, slug string) (bool, error) {
	recipe, err := s.target(ctx, p, slug)
	if err != nil {
		return false, err
	}
	rows, err := s.favoriteRepo.Delete(ctx, p.UserID, recipe.ID)
	if err != nil {
		return false, err
	}
	if rows > 0 {
		return false, nil
	}
	err = s.favoriteRepo.Create(ctx, p.UserID, recipe.ID)
	if err != nil && !errors.Is(err, repository.ErrDuplicateKey) {
		return false, err
	}
	return true, nil
}

// RemoveSaved 收藏页的移除操作，不存在时返回 false
func (s *favoriteServiceImpl) RemoveSaved(ctx context.Context, p Principal, slug string) (bool, error) {
	recipe, err := visibleRecipe(ctx, s.recipeRepo, p, slug)
	if err != nil {
		return false, err
	}
	rows, err := s.favoriteRepo.Delete(ctx, p.UserID, recipe.ID)
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (s *favoriteServiceImpl) IsFavorited(ctx context.Context, userID, recipeID uint64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.favoriteRepo.Exists(ctx, userID, recipeID)
}

// ListSaved 按收藏时间倒序，非 staff 只返回已通过的菜谱
func (s *favoriteServiceImpl) ListSaved(ctx context.Context, p Principal) ([]any, error) {
	ids, err := s.favoriteRepo.ListRecipeIDsByUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	recipes, err := s.recipeRepo.GetRecipesByIDs(ctx, ids, model.VisibleStatuses(p.Staff))
	if err != nil {
		return nil, err
	}
	return s.projector.List(orderByIDs(ids, recipes), p.Staff), nil
}

// orderByIDs 按 ids 的顺序重排，缺失的 ID 跳过
func orderByIDs(ids []uint64, recipes []*model.Recipe) []*model.Recipe {
	byID := make(map[uint64]*model.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}
	out := make([]*model.Recipe, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out
}
