package api

import (
	"RecipeHub/internal/api/handler"
	"RecipeHub/internal/model"
	"RecipeHub/internal/pkg/counter"
	"RecipeHub/internal/pkg/es"
	"RecipeHub/internal/pkg/mongo"
	"RecipeHub/internal/pkg/security"
	"RecipeHub/internal/repository/repotest"
	"RecipeHub/internal/service"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type nopSearchIndex struct{}

func (nopSearchIndex) SearchRecipeIDs(context.Context, string, int, int) ([]uint64, error) {
	return []uint64{}, nil
}
func (nopSearchIndex) IndexRecipe(context.Context, *es.RecipeES) error { return nil }
func (nopSearchIndex) DeleteRecipe(context.Context, uint64) error { return nil }

type nopInbox struct{}

func (nopInbox) CreateNotification(context.Context, *mongo.Notification) error { return nil }
func (nopInbox) GetNotificationList(context.Context, uint64, int64, int64) ([]*mongo.Notification, error) {
	return []*mongo.Notification{}, nil
}
func (nopInbox) MarkAsRead(context.Context, uint64, string) error { return nil }
func (nopInbox) MarkAllAsRead(context.Context, uint64) error { return nil }
func (nopInbox) GetUnreadCount(context.Context, uint64) (int64, error) { return 0, nil }

type nopPhotos struct{}

func (nopPhotos) Upload(_ context.Context, key string, _ io.Reader, _ int64, _ string) (string, error) {
	return key, nil
}
func (nopPhotos) Delete(context.Context, string) error { return nil }
func (nopPhotos) PublicURL(key string) string { return key }

type nopPublisher struct{}

func (nopPublisher) PublishModeration(context.Context, *model.ModerationEvent) error { return nil }

var errRedisDown = errors.New("redis down")

// downStore 与 downCache 模拟 Redis 不可用
type downStore struct{}

func (downStore) Get(context.Context, string) (int64, error) { return 0, errRedisDown }
func (downStore) Set(context.Context, string, int64) error { return errRedisDown }
func (downStore) Incr(context.Context, string) (int64, error) { return 0, errRedisDown }
func (downStore) SetNX(context.Context, string, int64, time.Duration) (bool, error) {
	return false, errRedisDown
}
func (downStore) ZAdd(context.Context, string, string, float64) error { return errRedisDown }
func (downStore) ZRem(context.Context, string, string) error { return errRedisDown }
func (downStore) ZRevRange(context.Context, string, int64) ([]string, error) {
	return nil, errRedisDown
}
func (downStore) ZReplace(context.Context, string, map[string]float64) error { return errRedisDown }

type downCache struct{}

func (downCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errRedisDown }
func (downCache) Set(context.Context, string, []byte, time.Duration) error { return errRedisDown }
func (downCache) Delete(context.Context, string) error { return errRedisDown }

type testApp struct {
	t        *testing.T
	router   *gin.Engine
	db       *repotest.DB
	dessert  *model.Category
	owner    *model.User
	alice    *model.User
	staff    *model.User
	ownerTok string
	aliceTok string
	staffTok string
}

func newTestApp(t *testing.T) *testApp {
	return newTestAppWith(t, counter.NewMemoryStore(), counter.NewMemoryCache())
}

func newTestAppWith(t *testing.T, store counter.Store, cache counter.Cache) *testApp {
	db := repotest.NewDB()

	recipeRepo := repotest.NewRecipeRepo(db)
	reviewRepo := repotest.NewReviewRepo(db)
	favoriteRepo := repotest.NewFavoriteRepo(db)
	categoryRepo := repotest.NewCategoryRepo(db)
	commentRepo := repotest.NewCommentRepo(db)

	projector := service.NewRecipeProjector(nopPhotos{})
	tokens := service.NewTokenService(cache)
	views := service.NewViewTracker(store)
	best := service.NewBestRecipeService(store, cache, recipeRepo, projector, service.BestRecipesTTL)
	favorites := service.NewFavoriteService(favoriteRepo, recipeRepo, projector)
	reviews := service.NewReviewService(reviewRepo, recipeRepo, store)
	search := service.NewSearchService(nopSearchIndex{}, recipeRepo, projector)
	moderation := service.NewModerationService(recipeRepo, best, nopPublisher{}, projector)
	recipes := service.NewRecipeService(recipeRepo, categoryRepo, reviewRepo, favorites, views, best,
		search, store, nopPhotos{}, projector)

	group := &HandlersGroup{
		Tokens:              tokens,
		BaseURL:             "http://api.test",
		RecipeHandler:       handler.NewRecipeHandler(recipes, best, moderation, favorites, reviews, search),
		ActionHandler:       handler.NewActionHandler(favorites, reviews),
		AccountHandler:      handler.NewAccountHandler(tokens),
		CommentHandler:      handler.NewCommentHandler(service.NewCommentService(commentRepo, recipeRepo)),
		CategoryHandler:     handler.NewCategoryHandler(service.NewCategoryService(categoryRepo, "http://api.test")),
		NotificationHandler: handler.NewNotificationHandler(service.NewNotificationService(nopInbox{})),
	}

	app := &testApp{t: t, router: SetupRouter(group), db: db}
	app.owner = db.AddUser("owner")
	app.alice = db.AddUser("alice")
	app.staff = db.AddUser("moderator")
	app.dessert = db.AddCategory("Dessert", "dessert")
	app.ownerTok = app.token(app.owner.ID, "USER")
	app.aliceTok = app.token(app.alice.ID, "USER")
	app.staffTok = app.token(app.staff.ID, "MODERATOR")
	return app
}

func (a *testApp) token(userID uint64, role string) string {
	tok, err := security.GenerateToken(userID, []string{role})
	if err != nil {
		a.t.Fatalf("GenerateToken: %v", err)
	}
	return tok
}

func (a *testApp) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func expect(t *testing.T, w *httptest.ResponseRecorder, status int, contains string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d; body %s", w.Code, status, w.Body.String())
	}
	if contains != "" && !strings.Contains(w.Body.String(), contains) {
		t.Fatalf("body %s does not contain %q", w.Body.String(), contains)
	}
}

func TestPing(t *testing.T) {
	app := newTestApp(t)
	expect(t, app.do(http.MethodGet, "/ping", "", ""), http.StatusOK, "pong")
}

func TestHiddenRecipeIsNotFound(t *testing.T) {
	app := newTestApp(t)
	r := app.db.AddRecipe(app.owner, app.dessert, "Secret", model.StatusInProcess)

	for _, tok := range []string{app.ownerTok, app.aliceTok} {
		expect(t, app.do(http.MethodGet, "/recipes/"+r.Slug, tok, ""), http.StatusNotFound, "Recipe not found")
	}
	expect(t, app.do(http.MethodGet, "/recipes/"+r.Slug, app.staffTok, ""), http.StatusOK, `"moderation_status":"in_process"`)
	expect(t, app.do(http.MethodGet, "/recipes/"+r.Slug, "", ""), http.StatusUnauthorized, "")
}

func TestRecipeDetailViews(t *testing.T) {
	app := newTestApp(t)
	r := app.db.AddRecipe(app.owner, app.dessert, "Cake", model.StatusApproved)

	type detail struct {
		Views int64 `json:"views"`
	}
	first := decode[detail](t, app.do(http.MethodGet, "/recipes/"+r.Slug, app.aliceTok, ""))
	second := decode[detail](t, app.do(http.MethodGet, "/recipes/"+r.Slug, app.aliceTok, ""))
	if first.Views != 1 || second.Views != 1 {
		t.Fatalf("views = %d then %d, want 1 then 1", first.Views, second.Views)
	}
}

func TestFavoriteEndpoints(t *testing.T) {
	app := newTestApp(t)
	r := app.db.AddRecipe(app.owner, app.dessert, "Cookies", model.StatusApproved)
	path := "/recipes/" + r.Slug + "/favorite"

	expect(t, app.do(http.MethodPost, path, app.aliceTok, ""), http.StatusCreated, `"is_favorited":true`)
	expect(t, app.do(http.MethodPost, path, app.aliceTok, ""), http.StatusBadRequest, "already in favorites")
	expect(t, app.do(http.MethodPost, path, app.ownerTok, ""), http.StatusBadRequest, "You cannot add your recipe to favorites")
	expect(t, app.do(http.MethodDelete, path, app.aliceTok, ""), http.StatusNoContent, "")
	expect(t, app.do(http.MethodDelete, path, app.aliceTok, ""), http.StatusBadRequest, "Recipe is not in favorites")
}

func TestSaveRecipeToggle(t *testing.T) {
	app := newTestApp(t)
	r := app.db.AddRecipe(app.owner, app.dessert, "Muffins", model.StatusApproved)
	body := `{"slug":"` + r.Slug + `"}`

	expect(t, app.do(http.MethodGet, "/save-recipe/", app.aliceTok, ""), http.StatusMethodNotAllowed, "POST required")
	expect(t, app.do(http.MethodPost, "/save-recipe/", app.aliceTok, "{not json"), http.StatusBadRequest, "Invalid JSON")
	expect(t, app.do(http.MethodPost, "/save-recipe/", app.aliceTok, "{}"), http.StatusBadRequest, "Missing fields")
	expect(t, app.do(http.MethodPost, "/save-recipe/", app.ownerTok, body), http.StatusBadRequest, "You cannot add your recipe to favorites")

	expect(t, app.do(http.MethodPost, "/save-recipe/", app.aliceTok, body), http.StatusOK, `"is_favorited":true`)
	expect(t, app.do(http.MethodPost, "/save-recipe/", app.aliceTok, body), http.StatusOK, `"is_favorited":false`)
	if app.db.HasFavorite(app.alice.ID, r.ID) {
		t.Fatal("relation still present after double toggle")
	}
}

func TestSendReview(t *testing.T) {
	app := newTestApp(t)
	r := app.db.AddRecipe(app.owner, app.dessert, "Fish", model.StatusApproved)
	bob := app.db.AddUser("bob")
	bobTok := app.token(bob.ID, "USER")

	expect(t, app.do(http.MethodPut, "/send-review/", app.aliceTok, ""), http.StatusMethodNotAllowed, "POST required")
	expect(t, app.do(http.MethodPost, "/send-review/", app.aliceTok, `{"slug":"`+r.Slug+`"}`), http.StatusBadRequest, "Missing fields")
	expect(t, app.do(http.MethodPost, "/send-review/", app.aliceTok, `{"slug":"`+r.Slug+`","rating":"x"}`), http.StatusBadRequest, "Invalid JSON")
	expect(t, app.do(http.MethodPost, "/send-review/", app.ownerTok, `{"slug":"`+r.Slug+`","rating":5}`), http.StatusBadRequest, "You can't review yourself")

	expect(t, app.do(http.MethodPost, "/send-review/", app.aliceTok, `{"slug":"`+r.Slug+`","rating":5}`), http.StatusOK, `"updated":false`)
	w := app.do(http.MethodPost, "/send-review/", bobTok, `{"slug":"`+r.Slug+`","rating":4}`)
	expect(t, w, http.StatusOK, `"average_rating":4.5`)

	w = app.do(http.MethodPost, "/send-review/", bobTok, `{"slug":"`+r.Slug+`","rating":3}`)
	expect(t, w, http.StatusOK, `"updated":true`)
	if n := app.db.ReviewCount(r.ID); n != 2 {
		t.Fatalf("review rows = %d, want 2", n)
	}

	type best []struct {
		Slug string `json:"slug"`
	}
	list := decode[best](t, app.do(http.MethodGet, "/recipes/best-recipes", app.aliceTok, ""))
	if len(list) != 1 || list[0].Slug != r.Slug {
		t.Fatalf("best recipes = %+v", list)
	}
}

func TestCounterOutageKeepsEndpointsUp(t *testing.T) {
	app := newTestAppWith(t, downStore{}, downCache{})
	r := app.db.AddRecipe(app.owner, app.dessert, "Cake", model.StatusApproved)

	expect(t, app.do(http.MethodGet, "/recipes/"+r.Slug, app.aliceTok, ""), http.StatusOK, `"views":0`)
	expect(t, app.do(http.MethodGet, "/recipes/best-recipes", app.aliceTok, ""), http.StatusOK, "[]")
	expect(t, app.do(http.MethodPost, "/send-review/", app.aliceTok, `{"slug":"`+r.Slug+`","rating":5}`), http.StatusOK, `"average_rating":5`)
	if n := app.db.ReviewCount(r.ID); n != 1 {
		t.Fatalf("review rows = %d, want 1", n)
	}

	expect(t, app.do(http.MethodGet, "/recipes/"+r.Slug, "a.b.c", ""), http.StatusUnauthorized, "")
}

func TestListRecipesOrderingAndPaging(t *testing.T) {
	app := newTestApp(t)
	for i := 0; i < 11; i++ {
		name := "Filler " + string(rune('a'+i))
		app.db.AddRecipe(app.owner, app.dessert, name, model.StatusApproved)
	}
	a := app.db.AddRecipe(app.owner, app.dessert, "A", model.StatusApproved)
	b := app.db.AddRecipe(app.owner, app.dessert, "B", model.StatusApproved)
	ten, five := 10, 5
	a.CookingTime, b.CookingTime = &ten, &five

	type page struct {
		Count    int64   `json:"count"`
		Next     *string `json:"next"`
		Previous *string `json:"previous"`
		Results  []struct {
			Name string `json:"name"`
		} `json:"results"`
	}

	p := decode[page](t, app.do(http.MethodGet, "/recipes?ordering=-cooking_time", "", ""))
	if p.Count != 13 || len(p.Results) != 10 {
		t.Fatalf("page = %d results of %d", len(p.Results), p.Count)
	}
	if p.Results[0].Name != "A" || p.Results[1].Name != "B" {
		t.Fatalf("ordering = %s, %s", p.Results[0].Name, p.Results[1].Name)
	}
	if p.Previous != nil || p.Next == nil || *p.Next != "http://api.test/recipes?ordering=-cooking_time&page=2" {
		t.Fatalf("links next=%v previous=%v", p.Next, p.Previous)
	}

	p = decode[page](t, app.do(http.MethodGet, "/recipes?page=2", "", ""))
	if len(p.Results) != 3 || p.Next != nil || p.Previous == nil || *p.Previous != "http://api.test/recipes" {
		t.Fatalf("page 2 = %d results, next=%v previous=%v", len(p.Results), p.Next, p.Previous)
	}

	expect(t, app.do(http.MethodGet, "/recipes?cooking_time_gte=abc", "", ""), http.StatusBadRequest, "Invalid request")
}

func TestCreateRecipeFlow(t *testing.T) {
	app := newTestApp(t)
	body := `{"name":"Lemon Tart","category":` + itoa(app.dessert.ID) + `,"ingredients":"lemon - 2","recipe_text":"Bake.","servings":4}`

	expect(t, app.do(http.MethodPost, "/recipes", "", body), http.StatusUnauthorized, "")
	expect(t, app.do(http.MethodPost, "/recipes", app.aliceTok, `{"name":"x"}`), http.StatusBadRequest, "failed on")
	w := app.do(http.MethodPost, "/recipes", app.aliceTok, body)
	expect(t, w, http.StatusCreated, `"slug":"lemon-tart"`)

	expect(t, app.do(http.MethodGet, "/recipes/lemon-tart", app.aliceTok, ""), http.StatusNotFound, "")
	expect(t, app.do(http.MethodGet, "/recipes/in-process", app.aliceTok, ""), http.StatusForbidden, "")
	expect(t, app.do(http.MethodGet, "/recipes/in-process", app.staffTok, ""), http.StatusOK, "lemon-tart")

	expect(t, app.do(http.MethodPatch, "/recipes/lemon-tart/moderate", app.aliceTok, `{"status":"approved"}`), http.StatusForbidden, "only staff")
	expect(t, app.do(http.MethodPatch, "/recipes/lemon-tart/moderate", app.staffTok, `{"status":"in_process"}`), http.StatusBadRequest, "")
	expect(t, app.do(http.MethodPatch, "/recipes/lemon-tart/moderate", app.staffTok, `{"status":"approved"}`), http.StatusOK, `"status":"approved"`)
	expect(t, app.do(http.MethodGet, "/recipes/lemon-tart", app.aliceTok, ""), http.StatusOK, `"views":1`)

	expect(t, app.do(http.MethodPatch, "/recipes/lemon-tart", app.ownerTok, `{"servings":2}`), http.StatusForbidden, "")
	expect(t, app.do(http.MethodPatch, "/recipes/lemon-tart", app.aliceTok, `{"servings":2}`), http.StatusOK, `"servings":2`)
	expect(t, app.do(http.MethodDelete, "/recipes/lemon-tart", app.aliceTok, ""), http.StatusNoContent, "")
	expect(t, app.do(http.MethodGet, "/recipes/lemon-tart", app.staffTok, ""), http.StatusNotFound, "")
}

func TestLogoutRevokesToken(t *testing.T) {
	app := newTestApp(t)
	expect(t, app.do(http.MethodGet, "/accounts/saved-recipes", app.aliceTok, ""), http.StatusOK, "")
	expect(t, app.do(http.MethodPost, "/accounts/logout", app.aliceTok, ""), http.StatusOK, `"status":"ok"`)
	expect(t, app.do(http.MethodGet, "/accounts/saved-recipes", app.aliceTok, ""), http.StatusUnauthorized, "")
}

func TestCategoryEndpoints(t *testing.T) {
	app := newTestApp(t)
	expect(t, app.do(http.MethodPost, "/categories", app.aliceTok, `{"name":"Soups"}`), http.StatusForbidden, "")
	expect(t, app.do(http.MethodPost, "/categories", app.staffTok, `{"name":"Soups"}`), http.StatusCreated, `"slug":"soups"`)
	type page struct {
		Count int64   `json:"count"`
		Next  *string `json:"next"`
	}
	p := decode[page](t, app.do(http.MethodGet, "/categories?page-size=1", "", ""))
	if p.Count != 2 || p.Next == nil || *p.Next != "http://api.test/categories?page=2&page-size=1" {
		t.Fatalf("categories page = %+v", p)
	}
	expect(t, app.do(http.MethodGet, "/categories/999", "", ""), http.StatusNotFound, "Category not found")
}

func TestCommentEndpoints(t *testing.T) {
	app := newTestApp(t)
	r := app.db.AddRecipe(app.owner, app.dessert, "Pudding", model.StatusApproved)

	w := app.do(http.MethodPost, "/comments", app.aliceTok, `{"recipe":"`+r.Slug+`","text":"Yum"}`)
	expect(t, w, http.StatusCreated, `"user":"alice"`)
	id := itoa(decode[struct {
		ID uint64 `json:"id"`
	}](t, w).ID)

	expect(t, app.do(http.MethodGet, "/comments", app.aliceTok, ""), http.StatusForbidden, "")
	expect(t, app.do(http.MethodPatch, "/comments/"+id+"/activate", app.staffTok, `{"active":false}`), http.StatusOK, `"active":false`)
	expect(t, app.do(http.MethodGet, "/recipes/"+r.Slug+"/comments", app.aliceTok, ""), http.StatusOK, "[]")
	expect(t, app.do(http.MethodDelete, "/comments/"+id, app.ownerTok, ""), http.StatusForbidden, "")
	expect(t, app.do(http.MethodDelete, "/comments/"+id, app.aliceTok, ""), http.StatusNoContent, "")
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}
