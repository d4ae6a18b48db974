package service

import (
	"RecipeHub/internal/model"
	"RecipeHub/internal/pkg/es"
	"RecipeHub/internal/pkg/util"
	"RecipeHub/internal/repository"
	"context"
	log "log/slog"
)

type SearchService interface {
	Search(ctx context.Context, p Principal, query string, page, pageSize int) ([]any, error)
	Sync(ctx context.Context, recipe *model.Recipe)
	Remove(ctx context.Context, recipeID uint64)
}

type searchServiceImpl struct {
	recipeESRepo es.RecipeRepo
	recipeRepo   repository.RecipeRepo
	projector    *RecipeProjector
}

func NewSearchService(recipeESRepo es.RecipeRepo, recipeRepo repository.RecipeRepo, projector *RecipeProjector) SearchService {
	return &searchServiceImpl{
		recipeESRepo: recipeESRepo,
		recipeRepo:   recipeRepo,
		projector:    projector,
	}
}

// Search 由 ES 取 ID，再从数据库补全，只返回已通过的菜谱
func (s *searchServiceImpl) Search(ctx context.Context, p Principal, query string, page, pageSize int) ([]any, error) {
	if query == "" {
		return []any{}, nil
	}
	ids, err := s.recipeESRepo.SearchRecipeIDs(ctx, query, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	recipes, err := s.recipeRepo.GetRecipesByIDs(ctx, ids, []model.ModerationStatus{model.StatusApproved})
	if err != nil {
		return nil, err
	}
	return s.projector.List(orderByIDs(ids, recipes), p.Staff), nil
}

// Sync 内容变更后同步索引，未通过的菜谱从索引中移除
func (s *searchServiceImpl) Sync(ctx context.Context, recipe *model.Recipe) {
	var err error
	if recipe.ModerationStatus == model.StatusApproved {
		err = s.recipeESRepo.IndexRecipe(ctx, es.NewRecipeES(recipe, util.IngredientNames(recipe.Ingredients)))
	} else {
		err = s.recipeESRepo.DeleteRecipe(ctx, recipe.ID)
	}
	if err != nil {
		log.WarnContext(ctx, "search index sync failed", "recipe_id", recipe.ID, "err", err)
	}
}

func (s *searchServiceImpl) Remove(ctx context.Context, recipeID uint64) {
	if err := s.recipeESRepo.DeleteRecipe(ctx, recipeID); err != nil {
		log.WarnContext(ctx, "search index delete failed", "recipe_id", recipeID, "err", err)
	}
}
