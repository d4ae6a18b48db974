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
)

const (
	MinRating = 1.0
	MaxRating = 5.0
)

type ReviewService interface {
	SubmitReview(ctx context.Context, p Principal, slug string, rating float64) (*dto.ReviewResultDTO, error)
	ListReviews(ctx context.Context, p Principal, slug string) ([]*dto.ReviewDTO, error)
	RebuildLeaderboard(ctx context.Context) (int, error)
}

type reviewServiceImpl struct {
	reviewRepo repository.ReviewRepo
	recipeRepo repository.RecipeRepo
	store      counter.Store
}

func NewReviewService(reviewRepo repository.ReviewRepo, recipeRepo repository.RecipeRepo, store counter.Store) ReviewService {
	return &reviewServiceImpl{
		reviewRepo: reviewRepo,
		recipeRepo: recipeRepo,
		store:      store,
	}
}

// SubmitReview 写入评分并刷新排行榜，排行榜写失败不影响结果
func (s *reviewServiceImpl) SubmitReview(ctx context.Context, p Principal, slug string, rating float64) (*dto.ReviewResultDTO, error) {
	if rating < MinRating || rating > MaxRating {
		return nil, ErrInvalidRating
	}
	recipe, err := visibleRecipe(ctx, s.recipeRepo, p, slug)
	if err != nil {
		return nil, err
	}
	if recipe.IsOwnedBy(p.UserID) {
		return nil, ErrSelfReview
	}

	updated, err := s.reviewRepo.UpsertReview(ctx, &model.Review{
		RecipeID: recipe.ID,
		UserID:   p.UserID,
		Rating:   rating,
	})
	if err != nil {
		return nil, err
	}

	avg, err := s.reviewRepo.GetAverage(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}

	member := strconv.FormatUint(recipe.ID, 10)
	if err = s.store.ZAdd(ctx, consts.RecipeRatingsKey, member, avg.Average); err != nil {
		log.WarnContext(ctx, "leaderboard update failed", "recipe_id", recipe.ID, "err", err)
		metrics.RecordCounterFailure("leaderboard_add")
	}

	return &dto.ReviewResultDTO{
		Status:        "ok",
		Rating:        rating,
		Updated:       updated,
		AverageRating: avg.Average,
	}, nil
}

func (s *reviewServiceImpl) ListReviews(ctx context.Context, p Principal, slug string) ([]*dto.ReviewDTO, error) {
	recipe, err := visibleRecipe(ctx, s.recipeRepo, p, slug)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.ListByRecipe(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReviewDTO, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, &dto.ReviewDTO{
			Username:  r.User.Username,
			Rating:    r.Rating,
			CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}

// RebuildLeaderboard 由评分表重新计算整个排行榜，返回写入的菜谱数
func (s *reviewServiceImpl) RebuildLeaderboard(ctx context.Context) (int, error) {
	ratings, err := s.reviewRepo.AllAverages(ctx)
	if err != nil {
		return 0, err
	}
	scores := make(map[string]float64, len(ratings))
	for _, r := range ratings {
		if r.Count == 0 {
			continue
		}
		scores[strconv.FormatUint(r.RecipeID, 10)] = r.Average
	}
	if err = s.store.ZReplace(ctx, consts.RecipeRatingsKey, scores); err != nil {
		return 0, err
	}
	return len(scores), nil
}
