package service

import (
	"RecipeHub/internal/api/dto"
	"RecipeHub/internal/model"
	"RecipeHub/internal/pkg/metrics"
	"RecipeHub/internal/repository"
	"context"
	log "log/slog"
	"time"
)

type ModerationService interface {
	Moderate(ctx context.Context, p Principal, slug, status string) (*dto.ModerateResultDTO, error)
	ListInProcess(ctx context.Context, p Principal) ([]*dto.RecipeStaffDTO, error)
}

type moderationServiceImpl struct {
	recipeRepo repository.RecipeRepo
	best       BestRecipeService
	publisher  EventPublisher
	projector  *RecipeProjector
}

func NewModerationService(
	recipeRepo repository.RecipeRepo,
	best BestRecipeService,
	publisher EventPublisher,
	projector *RecipeProjector,
) ModerationService {
	return &moderationServiceImpl{
		recipeRepo: recipeRepo,
		best:       best,
		publisher:  publisher,
		projector:  projector,
	}
}

// visibleRecipe 审核闸门：非 staff 只能取到已通过的菜谱，隐藏与不存在返回同一个错误
func visibleRecipe(ctx context.Context, repo repository.RecipeRepo, p Principal, slug string) (*model.Recipe, error) {
	if slug == "" {
		return nil, ErrRecipeNotFound
	}
	recipe, err := repo.GetRecipeBySlug(ctx, slug, model.VisibleStatuses(p.Staff))
	if err != nil {
		return nil, err
	}
	if recipe == nil || !recipe.ModerationStatus.Visible(p.Staff) {
		return nil, ErrRecipeNotFound
	}
	return recipe, nil
}

// Moderate 修改审核状态，失效最佳菜谱缓存并异步通知作者
func (s *moderationServiceImpl) Moderate(ctx context.Context, p Principal, slug, status string) (*dto.ModerateResultDTO, error) {
	if !p.Staff {
		return nil, model.ErrTransitionForbidden
	}
	target, ok := model.ParseModerationStatus(status)
	if !ok {
		return nil, model.ErrInvalidTransition
	}

	recipe, err := visibleRecipe(ctx, s.recipeRepo, p, slug)
	if err != nil {
		return nil, err
	}

	next, err := recipe.ModerationStatus.Transition(target, p.Staff)
	if err != nil {
		return nil, err
	}
	if err = s.recipeRepo.UpdateRecipeStatus(ctx, recipe.ID, next); err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "recipe moderated", "recipe_id", recipe.ID, "from", recipe.ModerationStatus, "to", next, "moderator", p.UserID)

	s.best.Invalidate(ctx)

	ev := &model.ModerationEvent{
		RecipeID:    recipe.ID,
		Slug:        recipe.Slug,
		Name:        recipe.Name,
		OwnerID:     recipe.UserID,
		ModeratorID: p.UserID,
		Status:      next,
		OccurredAt:  time.Now(),
	}
	if err = s.publisher.PublishModeration(ctx, ev); err != nil {
		log.ErrorContext(ctx, "publish moderation event failed", "recipe_id", recipe.ID, "err", err)
		metrics.ModerationEvents.WithLabelValues("publish", "failure").Inc()
	}

	return &dto.ModerateResultDTO{
		ID:     recipe.ID,
		Slug:   recipe.Slug,
		Status: next.String(),
	}, nil
}

func (s *moderationServiceImpl) ListInProcess(ctx context.Context, p Principal) ([]*dto.RecipeStaffDTO, error) {
	if !p.Staff {
		return nil, ErrPermissionDenied
	}
	recipes, err := s.recipeRepo.ListRecipesByStatus(ctx, model.StatusInProcess)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RecipeStaffDTO, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, s.projector.Staff(r))
	}
	return out, nil
}
