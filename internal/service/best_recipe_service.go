package service

import (
	"RecipeHub/internal/api/dto"
	"RecipeHub/internal/model"
	"RecipeHub/internal/pkg/consts"
	"RecipeHub/internal/pkg/counter"
	"RecipeHub/internal/pkg/metrics"
	"RecipeHub/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// BestRecipesTTL 默认缓存时间
const BestRecipesTTL = 10 * time.Minute

type BestRecipeService interface {
	GetBestRecipes(ctx context.Context) ([]*dto.RecipeDTO, error)
	Invalidate(ctx context.Context)
}

type bestRecipeServiceImpl struct {
	store      counter.Store
	cache      counter.Cache
	recipeRepo repository.RecipeRepo
	projector  *RecipeProjector
	ttl        time.Duration
}

func NewBestRecipeService(
	store counter.Store,
	cache counter.Cache,
	recipeRepo repository.RecipeRepo,
	projector *RecipeProjector,
	ttl time.Duration,
) BestRecipeService {
	if ttl <= 0 {
		ttl = BestRecipesTTL
	}
	return &bestRecipeServiceImpl{
		store:      store,
		cache:      cache,
		recipeRepo: recipeRepo,
		projector:  projector,
		ttl:        ttl,
	}
}

// GetBestRecipes 缓存优先，未命中时由排行榜和数据库重新组装
func (s *bestRecipeServiceImpl) GetBestRecipes(ctx context.Context) ([]*dto.RecipeDTO, error) {
	if cached, ok := s.fromCache(ctx); ok {
		metrics.RecordBestRecipesCache(true)
		return cached, nil
	}
	metrics.RecordBestRecipesCache(false)

	members, err := s.store.ZRevRange(ctx, consts.RecipeRatingsKey, consts.BestRecipesLimit)
	if err != nil {
		log.WarnContext(ctx, "read leaderboard failed", "err", err)
		metrics.RecordCounterFailure("leaderboard_range")
		return []*dto.RecipeDTO{}, nil
	}
	if len(members) == 0 {
		return []*dto.RecipeDTO{}, nil
	}

	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	recipes, err := s.recipeRepo.GetRecipesByIDs(ctx, ids, []model.ModerationStatus{model.StatusApproved})
	if err != nil {
		return nil, err
	}
	// 按排行榜顺序组装，已删除或未通过的菜谱直接跳过
	ordered := orderByIDs(ids, recipes)
	result := make([]*dto.RecipeDTO, 0, len(ordered))
	for _, r := range ordered {
		result = append(result, s.projector.Public(r))
	}

	// 空结果不缓存，下一条通过审核菜谱的评分可以立即生效
	if len(result) > 0 {
		s.writeCache(ctx, result)
	}
	return result, nil
}

func (s *bestRecipeServiceImpl) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, consts.BestRecipesKey); err != nil {
		log.WarnContext(ctx, "invalidate best recipes failed", "err", err)
		metrics.RecordCounterFailure("best_invalidate")
	}
}

func (s *bestRecipeServiceImpl) fromCache(ctx context.Context) ([]*dto.RecipeDTO, bool) {
	raw, ok, err := s.cache.Get(ctx, consts.BestRecipesKey)
	if err != nil {
		log.WarnContext(ctx, "read best recipes cache failed", "err", err)
		metrics.RecordCounterFailure("best_get")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var list []*dto.RecipeDTO
	if err = json.Unmarshal(raw, &list); err != nil {
		log.WarnContext(ctx, "corrupt best recipes cache", "err", err)
		return nil, false
	}
	if list == nil {
		list = []*dto.RecipeDTO{}
	}
	return list, true
}

func (s *bestRecipeServiceImpl) writeCache(ctx context.Context, list []*dto.RecipeDTO) {
	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err = s.cache.Set(ctx, consts.BestRecipesKey, raw, s.ttl); err != nil {
		log.WarnContext(ctx, "write best recipes cache failed", "err", err)
		metrics.RecordCounterFailure("best_set")
	}
}
