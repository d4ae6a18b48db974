package service

import (
	"RecipeHub/internal/pkg/consts"
	"RecipeHub/internal/pkg/counter"
	"RecipeHub/internal/pkg/metrics"
	"context"
	log "log/slog"
)

// ViewTracker 每个用户对每个菜谱只计一次浏览
type ViewTracker interface {
	Track(ctx context.Context, userID, recipeID uint64) int64
	Views(ctx context.Context, recipeID uint64) int64
}

type viewTrackerImpl struct {
	store counter.Store
}

func NewViewTracker(store counter.Store) ViewTracker {
	return &viewTrackerImpl{store: store}
}

// Track 标记不存在时写入标记并自增计数，返回当前浏览量，计数层失败时返回 0
func (s *viewTrackerImpl) Track(ctx context.Context, userID, recipeID uint64) int64 {
	if userID == 0 {
		return s.Views(ctx, recipeID)
	}

	first, err := s.store.SetNX(ctx, consts.RecipeViewerKey(userID, recipeID), 1, 0)
	if err != nil {
		log.WarnContext(ctx, "view marker failed", "recipe_id", recipeID, "err", err)
		metrics.RecordCounterFailure("view_marker")
		return s.Views(ctx, recipeID)
	}
	if !first {
		return s.Views(ctx, recipeID)
	}

	views, err := s.store.Incr(ctx, consts.RecipeViewsKey(recipeID))
	if err != nil {
		log.WarnContext(ctx, "view counter incr failed", "recipe_id", recipeID, "err", err)
		metrics.RecordCounterFailure("view_incr")
		return 0
	}
	return views
}

func (s *viewTrackerImpl) Views(ctx context.Context, recipeID uint64) int64 {
	views, err := s.store.Get(ctx, consts.RecipeViewsKey(recipeID))
	if err != nil {
		log.WarnContext(ctx, "view counter read failed", "recipe_id", recipeID, "err", err)
		metrics.RecordCounterFailure("view_get")
		return 0
	}
	return views
}
