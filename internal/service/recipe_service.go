package service

import (
	"RecipeHub/internal/api/dto"
	"RecipeHub/internal/model"
	"RecipeHub/internal/pkg/consts"
	"RecipeHub/internal/pkg/counter"
	"RecipeHub/internal/pkg/metrics"
	"RecipeHub/internal/pkg/minio"
	"RecipeHub/internal/pkg/util"
	"RecipeHub/internal/repository"
	"context"
	"errors"
	"io"
	log "log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

type RecipeService interface {
	ListRecipes(ctx context.Context, p Principal, q *dto.RecipeListQuery) ([]any, int64, error)
	BuildByIngredients(ctx context.Context, p Principal, ingredients string) ([]any, error)
	ListMyRecipes(ctx context.Context, p Principal) ([]any, error)
	GetRecipeDetail(ctx context.Context, p Principal, slug string) (*dto.RecipeDetailDTO, error)
	CreateRecipe(ctx context.Context, p Principal, req *dto.RecipeCreateDTO) (any, error)
	UpdateRecipe(ctx context.Context, p Principal, slug string, req *dto.RecipeUpdateDTO) (any, error)
	DeleteRecipe(ctx context.Context, p Principal, slug string) error
	UploadPhoto(ctx context.Context, p Principal, slug, filename string, size int64, reader io.Reader) (*dto.PhotoDTO, error)
}

const createSlugAttempts = 3

type recipeServiceImpl struct {
	recipeRepo   repository.RecipeRepo
	categoryRepo repository.CategoryRepo
	reviewRepo   repository.ReviewRepo
	favorites    FavoriteService
	views        ViewTracker
	best         BestRecipeService
	search       SearchService
	store        counter.Store
	photos       PhotoStorage
	projector    *RecipeProjector
}

func NewRecipeService(
	recipeRepo repository.RecipeRepo,
	categoryRepo repository.CategoryRepo,
	reviewRepo repository.ReviewRepo,
	favorites FavoriteService,
	views ViewTracker,
	best BestRecipeService,
	search SearchService,
	store counter.Store,
	photos PhotoStorage,
	projector *RecipeProjector,
) RecipeService {
	return &recipeServiceImpl{
		recipeRepo:   recipeRepo,
		categoryRepo: categoryRepo,
		reviewRepo:   reviewRepo,
		favorites:    favorites,
		views:        views,
		best:         best,
		search:       search,
		store:        store,
		photos:       photos,
		projector:    projector,
	}
}

func (s *recipeServiceImpl) ListRecipes(ctx context.Context, p Principal, q *dto.RecipeListQuery) ([]any, int64, error) {
	page, size := q.Page, q.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = consts.RecipePageSize
	}
	if size > consts.RecipeMaxPageSize {
		size = consts.RecipeMaxPageSize
	}
	ordering := q.Ordering
	if !repository.ValidOrdering(ordering) {
		ordering = "name"
	}

	recipes, total, err := s.recipeRepo.ListRecipes(ctx, &repository.RecipeQuery{
		Statuses:       model.VisibleStatuses(p.Staff),
		Search:         strings.TrimSpace(q.Search),
		CategoryName:   q.Category,
		CookingTimeGte: q.CookingTimeGte,
		Ordering:       ordering,
		Offset:         (page - 1) * size,
		Limit:          size,
	})
	if err != nil {
		return nil, 0, err
	}
	return s.projector.List(recipes, p.Staff), total, nil
}

// BuildByIngredients 返回包含任一食材的已通过菜谱，未指定食材时返回全部
func (s *recipeServiceImpl) BuildByIngredients(ctx context.Context, p Principal, ingredients string) ([]any, error) {
	names := util.ParseIngredientNames(ingredients)
	recipes, err := s.recipeRepo.ListRecipesByIngredients(ctx, names, []model.ModerationStatus{model.StatusApproved})
	if err != nil {
		return nil, err
	}
	return s.projector.List(recipes, p.Staff), nil
}

// ListMyRecipes 作者本人同样受审核闸门约束
func (s *recipeServiceImpl) ListMyRecipes(ctx context.Context, p Principal) ([]any, error) {
	recipes, err := s.recipeRepo.ListRecipesByUser(ctx, p.UserID, model.VisibleStatuses(p.Staff))
	if err != nil {
		return nil, err
	}
	return s.projector.List(recipes, p.Staff), nil
}

func (s *recipeServiceImpl) GetRecipeDetail(ctx context.Context, p Principal, slug string) (*dto.RecipeDetailDTO, error) {
	recipe, err := visibleRecipe(ctx, s.recipeRepo, p, slug)
	if err != nil {
		return nil, err
	}

	res := &dto.RecipeDetailDTO{Recipe: s.projector.For(recipe, p.Staff)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		avg, err := s.reviewRepo.GetAverage(gctx, recipe.ID)
		if err != nil {
			return err
		}
		if avg.Count > 0 {
			res.AverageRating = &avg.Average
		}
		return nil
	})
	g.Go(func() error {
		fav, err := s.favorites.IsFavorited(gctx, p.UserID, recipe.ID)
		if err != nil {
			return err
		}
		res.IsFavorited = fav
		return nil
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	// 浏览计数放在数据库查询成功之后，失败也只返回 0
	res.Views = s.views.Track(ctx, p.UserID, recipe.ID)
	return res, nil
}

func (s *recipeServiceImpl) CreateRecipe(ctx context.Context, p Principal, req *dto.RecipeCreateDTO) (any, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}
	ingredients, err := util.NormalizeIngredients(req.Ingredients)
	if err != nil {
		return nil, err
	}
	if err = s.checkCategory(ctx, req.Category); err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		UserID:           p.UserID,
		CategoryID:       req.Category,
		Name:             req.Name,
		AnnouncementText: req.AnnouncementText,
		Ingredients:      ingredients,
		RecipeText:       req.RecipeText,
		Servings:         req.Servings,
		CookingTime:      req.CookingTime,
		Calories:         req.Calories,
		ModerationStatus: model.StatusInProcess,
	}
	// 并发创建可能选中同一个 slug，唯一索引冲突时重新挑选
	for attempt := 1; ; attempt++ {
		recipe.Slug, err = util.UniqueSlug(util.Slugify(req.Name), func(candidate string) (bool, error) {
			return s.recipeRepo.SlugExists(ctx, candidate)
		})
		if err != nil {
			return nil, err
		}
		err = s.recipeRepo.CreateRecipe(ctx, recipe)
		if !errors.Is(err, repository.ErrDuplicateKey) || attempt == createSlugAttempts {
			break
		}
		log.WarnContext(ctx, "recipe slug taken concurrently, retrying", "slug", recipe.Slug, "attempt", attempt)
	}
	if err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "recipe created", "recipe_id", recipe.ID, "slug", recipe.Slug, "user_id", p.UserID)

	created, err := s.recipeRepo.GetRecipeByID(ctx, recipe.ID)
	if err != nil || created == nil {
		created = recipe
	}
	return s.projector.For(created, p.Staff), nil
}

// UpdateRecipe 只更新非空字段，slug 与审核状态保持不变
func (s *recipeServiceImpl) UpdateRecipe(ctx context.Context, p Principal, slug string, req *dto.RecipeUpdateDTO) (any, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}
	recipe, err := visibleRecipe(ctx, s.recipeRepo, p, slug)
	if err != nil {
		return nil, err
	}
	if !p.CanManage(recipe.UserID) {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Category != nil && *req.Category != recipe.CategoryID {
		if err = s.checkCategory(ctx, *req.Category); err != nil {
			return nil, err
		}
		recipe.CategoryID = *req.Category
	}
	if req.AnnouncementText != nil {
		recipe.AnnouncementText = *req.AnnouncementText
	}
	if req.Ingredients != nil {
		normalized, err := util.NormalizeIngredients(*req.Ingredients)
		if err != nil {
			return nil, err
		}
		recipe.Ingredients = normalized
	}
	if req.RecipeText != nil {
		recipe.RecipeText = *req.RecipeText
	}
	if req.Servings != nil {
		recipe.Servings = *req.Servings
	}
	if req.CookingTime != nil {
		recipe.CookingTime = req.CookingTime
	}
	if req.Calories != nil {
		recipe.Calories = req.Calories
	}

	if err = s.recipeRepo.UpdateRecipe(ctx, recipe); err != nil {
		return nil, err
	}

	updated, err := s.recipeRepo.GetRecipeByID(ctx, recipe.ID)
	if err != nil || updated == nil {
		updated = recipe
	}
	s.search.Sync(ctx, updated)
	s.best.Invalidate(ctx)
	return s.projector.For(updated, p.Staff), nil
}

// DeleteRecipe 删除后移出排行榜、失效缓存、清理索引与图片
func (s *recipeServiceImpl) DeleteRecipe(ctx context.Context, p Principal, slug string) error {
	recipe, err := visibleRecipe(ctx, s.recipeRepo, p, slug)
	if err != nil {
		return err
	}
	if !p.CanManage(recipe.UserID) {
		return ErrPermissionDenied
	}
	if err = s.recipeRepo.DeleteRecipe(ctx, recipe.ID); err != nil {
		return err
	}
	log.InfoContext(ctx, "recipe deleted", "recipe_id", recipe.ID, "by", p.UserID)

	if err = s.store.ZRem(ctx, consts.RecipeRatingsKey, strconv.FormatUint(recipe.ID, 10)); err != nil {
		log.WarnContext(ctx, "leaderboard remove failed", "recipe_id", recipe.ID, "err", err)
		metrics.RecordCounterFailure("leaderboard_rem")
	}
	s.best.Invalidate(ctx)
	s.search.Remove(ctx, recipe.ID)

	if recipe.Photo != "" {
		if err = s.photos.Delete(ctx, recipe.Photo); err != nil {
			log.WarnContext(ctx, "photo delete failed", "key", recipe.Photo, "err", err)
		}
	}
	return nil
}

var photoTypes = map[string]string{
	".jpg":  consts.MimeJPEG,
	".jpeg": consts.MimeJPEG,
	".png":  consts.MimePNG,
}

// UploadPhoto 图片保存在 recipes/<username>-<slug>，同名覆盖
func (s *recipeServiceImpl) UploadPhoto(ctx context.Context, p Principal, slug, filename string, size int64, reader io.Reader) (*dto.PhotoDTO, error) {
	contentType, ok := photoTypes[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return nil, ErrFileNotSupported
	}
	recipe, err := visibleRecipe(ctx, s.recipeRepo, p, slug)
	if err != nil {
		return nil, err
	}
	if !p.CanManage(recipe.UserID) {
		return nil, ErrPermissionDenied
	}

	key := minio.PhotoKey(recipe.User.Username, recipe.Slug)
	if _, err = s.photos.Upload(ctx, key, reader, size, contentType); err != nil {
		return nil, err
	}
	if err = s.recipeRepo.UpdateRecipePhoto(ctx, recipe.ID, key); err != nil {
		return nil, err
	}
	s.best.Invalidate(ctx)
	return &dto.PhotoDTO{Photo: s.photos.PublicURL(key)}, nil
}

func (s *recipeServiceImpl) checkCategory(ctx context.Context, id uint64) error {
	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryInvalid
	}
	return nil
}
