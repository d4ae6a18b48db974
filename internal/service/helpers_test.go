package service

import (
	"RecipeHub/internal/model"
	"RecipeHub/internal/pkg/counter"
	"RecipeHub/internal/repository/repotest"
	"context"
	"errors"
	"io"
	"sync"
	"time"
)

type fakePhotos struct {
	mu       sync.Mutex
	uploaded map[string]string
	deleted  []string
}

func newFakePhotos() *fakePhotos {
	return &fakePhotos{uploaded: map[string]string{}}
}

func (f *fakePhotos) Upload(_ context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, _ = io.Copy(io.Discard, r)
	f.uploaded[key] = contentType
	return key, nil
}

func (f *fakePhotos) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakePhotos) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return "http://cdn.test/recipehub/" + key
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*model.ModerationEvent
	err    error
}

func (f *fakePublisher) PublishModeration(_ context.Context, ev *model.ModerationEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return f.err
}

type fakeSearch struct {
	synced  []uint64
	removed []uint64
}

func (f *fakeSearch) Search(context.Context, Principal, string, int, int) ([]any, error) {
	return []any{}, nil
}

func (f *fakeSearch) Sync(_ context.Context, r *model.Recipe) { f.synced = append(f.synced, r.ID) }

func (f *fakeSearch) Remove(_ context.Context, id uint64) { f.removed = append(f.removed, id) }

// failingStore 所有操作都返回错误，模拟计数层不可用
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) Get(context.Context, string) (int64, error) { return 0, errStoreDown }
func (failingStore) Set(context.Context, string, int64) error { return errStoreDown }
func (failingStore) Incr(context.Context, string) (int64, error) { return 0, errStoreDown }
func (failingStore) ZAdd(context.Context, string, string, float64) error { return errStoreDown }
func (failingStore) ZRem(context.Context, string, string) error { return errStoreDown }
func (failingStore) SetNX(context.Context, string, int64, time.Duration) (bool, error) {
	return false, errStoreDown
}
func (failingStore) ZRevRange(context.Context, string, int64) ([]string, error) {
	return nil, errStoreDown
}
func (failingStore) ZReplace(context.Context, string, map[string]float64) error { return errStoreDown }

// fixture 组装一套基于内存仓储的服务
type fixture struct {
	db        *repotest.DB
	store     *counter.MemoryStore
	cache     *counter.MemoryCache
	photos    *fakePhotos
	publisher *fakePublisher
	search    *fakeSearch
	projector *RecipeProjector

	recipeRepo   *repotest.RecipeRepo
	reviewRepo   *repotest.ReviewRepo
	favoriteRepo *repotest.FavoriteRepo
	categoryRepo *repotest.CategoryRepo
	commentRepo  *repotest.CommentRepo

	views      ViewTracker
	best       BestRecipeService
	favorites  FavoriteService
	reviews    ReviewService
	moderation ModerationService
	recipes    RecipeService
	comments   CommentService
	categories CategoryService

	owner, alice, bob, staff *model.User
	dessert                  *model.Category
}

func newFixture() *fixture {
	f := &fixture{
		db:        repotest.NewDB(),
		store:     counter.NewMemoryStore(),
		cache:     counter.NewMemoryCache(),
		photos:    newFakePhotos(),
		publisher: &fakePublisher{},
		search:    &fakeSearch{},
	}
	f.projector = NewRecipeProjector(f.photos)
	f.recipeRepo = repotest.NewRecipeRepo(f.db)
	f.reviewRepo = repotest.NewReviewRepo(f.db)
	f.favoriteRepo = repotest.NewFavoriteRepo(f.db)
	f.categoryRepo = repotest.NewCategoryRepo(f.db)
	f.commentRepo = repotest.NewCommentRepo(f.db)

	f.views = NewViewTracker(f.store)
	f.best = NewBestRecipeService(f.store, f.cache, f.recipeRepo, f.projector, BestRecipesTTL)
	f.favorites = NewFavoriteService(f.favoriteRepo, f.recipeRepo, f.projector)
	f.reviews = NewReviewService(f.reviewRepo, f.recipeRepo, f.store)
	f.moderation = NewModerationService(f.recipeRepo, f.best, f.publisher, f.projector)
	f.recipes = NewRecipeService(f.recipeRepo, f.categoryRepo, f.reviewRepo, f.favorites,
		f.views, f.best, f.search, f.store, f.photos, f.projector)
	f.comments = NewCommentService(f.commentRepo, f.recipeRepo)
	f.categories = NewCategoryService(f.categoryRepo, "http://api.test")

	f.owner = f.db.AddUser("owner")
	f.alice = f.db.AddUser("alice")
	f.bob = f.db.AddUser("bob")
	f.staff = f.db.AddUser("moderator")
	f.dessert = f.db.AddCategory("Dessert", "dessert")
	return f
}

func (f *fixture) as(u *model.User) Principal {
	return Principal{UserID: u.ID, Staff: u == f.staff}
}

func (f *fixture) recipe(name string, status model.ModerationStatus) *model.Recipe {
	return f.db.AddRecipe(f.owner, f.dessert, name, status)
}
