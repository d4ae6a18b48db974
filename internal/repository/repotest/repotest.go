// Package repotest 提供仓储接口的内存实现，供服务层与接口层测试使用
package repotest

import (
	"RecipeHub/internal/model"
	"RecipeHub/internal/repository"
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// DB 共享的内存数据，各仓储读写同一份
type DB struct {
	mu         sync.Mutex
	nextID     uint64
	Users      map[uint64]*model.User
	Categories map[uint64]*model.Category
	Recipes    map[uint64]*model.Recipe
	Reviews    map[[2]uint64]*model.Review // [user, recipe]
	Comments   map[uint64]*model.Comment
	Favorites  map[[2]uint64]time.Time // [user, recipe]
}

func NewDB() *DB {
	return &DB{
		Users:      map[uint64]*model.User{},
		Categories: map[uint64]*model.Category{},
		Recipes:    map[uint64]*model.Recipe{},
		Reviews:    map[[2]uint64]*model.Review{},
		Comments:   map[uint64]*model.Comment{},
		Favorites:  map[[2]uint64]time.Time{},
	}
}

func (db *DB) id() uint64 {
	db.nextID++
	return db.nextID
}

// AddUser 测试数据构造
func (db *DB) AddUser(username string) *model.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	u := &model.User{ID: db.id(), Username: username, Email: username + "@example.com", CreatedAt: time.Now()}
	db.Users[u.ID] = u
	return u
}

func (db *DB) AddCategory(name, slug string) *model.Category {
	db.mu.Lock()
	defer db.mu.Unlock()
	c := &model.Category{ID: db.id(), Name: name, Slug: slug}
	db.Categories[c.ID] = c
	return c
}

// AddRecipe slug 直接使用名称的小写形式
func (db *DB) AddRecipe(owner *model.User, category *model.Category, name string, status model.ModerationStatus) *model.Recipe {
	db.mu.Lock()
	defer db.mu.Unlock()
	now := time.Now()
	r := &model.Recipe{
		ID:               db.id(),
		UserID:           owner.ID,
		CategoryID:       category.ID,
		Name:             name,
		Slug:             strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		RecipeText:       "text",
		Servings:         2,
		ModerationStatus: status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	db.Recipes[r.ID] = r
	return r
}

func (db *DB) hydrate(r *model.Recipe) *model.Recipe {
	cp := *r
	if u, ok := db.Users[r.UserID]; ok {
		cp.User = *u
	}
	if c, ok := db.Categories[r.CategoryID]; ok {
		cp.Category = *c
	}
	return &cp
}

func statusAllowed(s model.ModerationStatus, statuses []model.ModerationStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, st := range statuses {
		if st == s {
			return true
		}
	}
	return false
}

// ReviewCount 返回某菜谱的评分行数
func (db *DB) ReviewCount(recipeID uint64) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for k := range db.Reviews {
		if k[1] == recipeID {
			n++
		}
	}
	return n
}

// HasFavorite 判断收藏关系是否存在
func (db *DB) HasFavorite(userID, recipeID uint64) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.Favorites[[2]uint64{userID, recipeID}]
	return ok
}

type RecipeRepo struct{ db *DB }

func NewRecipeRepo(db *DB) *RecipeRepo { return &RecipeRepo{db: db} }

var _ repository.RecipeRepo = (*RecipeRepo)(nil)

func (s *RecipeRepo) GetRecipeByID(_ context.Context, id uint64) (*model.Recipe, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	r, ok := s.db.Recipes[id]
	if !ok {
		return nil, nil
	}
	return s.db.hydrate(r), nil
}

func (s *RecipeRepo) GetRecipeBySlug(_ context.Context, slug string, statuses []model.ModerationStatus) (*model.Recipe, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, r := range s.db.Recipes {
		if r.Slug == slug && statusAllowed(r.ModerationStatus, statuses) {
			return s.db.hydrate(r), nil
		}
	}
	return nil, nil
}

func (s *RecipeRepo) GetRecipesByIDs(_ context.Context, ids []uint64, statuses []model.ModerationStatus) ([]*model.Recipe, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]*model.Recipe, 0, len(ids))
	for _, id := range ids {
		if r, ok := s.db.Recipes[id]; ok && statusAllowed(r.ModerationStatus, statuses) {
			out = append(out, s.db.hydrate(r))
		}
	}
	return out, nil
}

func (s *RecipeRepo) filter(pred func(*model.Recipe) bool) []*model.Recipe {
	out := make([]*model.Recipe, 0)
	for _, r := range s.db.Recipes {
		if pred(r) {
			out = append(out, s.db.hydrate(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ListRecipes 排序只实现 name 与 cooking_time 两种
func (s *RecipeRepo) ListRecipes(_ context.Context, q *repository.RecipeQuery) ([]*model.Recipe, int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	list := s.filter(func(r *model.Recipe) bool {
		if !statusAllowed(r.ModerationStatus, q.Statuses) {
			return false
		}
		if q.Search != "" {
			needle := strings.ToLower(q.Search)
			if !strings.Contains(strings.ToLower(r.Name+" "+r.Ingredients+" "+r.RecipeText), needle) {
				return false
			}
		}
		if q.CategoryName != "" {
			if c, ok := s.db.Categories[r.CategoryID]; !ok || c.Name != q.CategoryName {
				return false
			}
		}
		if q.CookingTimeGte != nil && (r.CookingTime == nil || *r.CookingTime < *q.CookingTimeGte) {
			return false
		}
		return true
	})

	cookingTime := func(r *model.Recipe) int {
		if r.CookingTime == nil {
			return 0
		}
		return *r.CookingTime
	}
	switch q.Ordering {
	case "cooking_time":
		sort.SliceStable(list, func(i, j int) bool { return cookingTime(list[i]) < cookingTime(list[j]) })
	case "-cooking_time":
		sort.SliceStable(list, func(i, j int) bool { return cookingTime(list[i]) > cookingTime(list[j]) })
	case "-name":
		sort.SliceStable(list, func(i, j int) bool { return list[i].Name > list[j].Name })
	}

	total := int64(len(list))
	start := q.Offset
	if start > len(list) {
		start = len(list)
	}
	end := len(list)
	if q.Limit > 0 && start+q.Limit < end {
		end = start + q.Limit
	}
	return list[start:end], total, nil
}

func (s *RecipeRepo) ListRecipesByUser(_ context.Context, userID uint64, statuses []model.ModerationStatus) ([]*model.Recipe, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.filter(func(r *model.Recipe) bool {
		return r.UserID == userID && statusAllowed(r.ModerationStatus, statuses)
	}), nil
}

func (s *RecipeRepo) ListRecipesByStatus(_ context.Context, status model.ModerationStatus) ([]*model.Recipe, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.filter(func(r *model.Recipe) bool { return r.ModerationStatus == status }), nil
}

func (s *RecipeRepo) ListRecipesByIngredients(_ context.Context, names []string, statuses []model.ModerationStatus) ([]*model.Recipe, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.filter(func(r *model.Recipe) bool {
		if !statusAllowed(r.ModerationStatus, statuses) {
			return false
		}
		if len(names) == 0 {
			return true
		}
		for _, n := range names {
			if strings.Contains(r.Ingredients, n) {
				return true
			}
		}
		return false
	}), nil
}

func (s *RecipeRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, r := range s.db.Recipes {
		if r.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *RecipeRepo) CreateRecipe(_ context.Context, recipe *model.Recipe) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, r := range s.db.Recipes {
		if r.Slug == recipe.Slug {
			return repository.ErrDuplicateKey
		}
	}
	recipe.ID = s.db.id()
	recipe.CreatedAt = time.Now()
	recipe.UpdatedAt = recipe.CreatedAt
	cp := *recipe
	cp.User, cp.Category = model.User{}, model.Category{}
	s.db.Recipes[recipe.ID] = &cp
	return nil
}

func (s *RecipeRepo) UpdateRecipe(_ context.Context, recipe *model.Recipe) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	r, ok := s.db.Recipes[recipe.ID]
	if !ok {
		return nil
	}
	r.CategoryID = recipe.CategoryID
	r.Name = recipe.Name
	r.AnnouncementText = recipe.AnnouncementText
	r.Ingredients = recipe.Ingredients
	r.RecipeText = recipe.RecipeText
	r.Servings = recipe.Servings
	r.CookingTime = recipe.CookingTime
	r.Calories = recipe.Calories
	r.UpdatedAt = time.Now()
	return nil
}

func (s *RecipeRepo) UpdateRecipeStatus(_ context.Context, id uint64, status model.ModerationStatus) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if r, ok := s.db.Recipes[id]; ok {
		r.ModerationStatus = status
	}
	return nil
}

func (s *RecipeRepo) UpdateRecipePhoto(_ context.Context, id uint64, photo string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if r, ok := s.db.Recipes[id]; ok {
		r.Photo = photo
	}
	return nil
}

func (s *RecipeRepo) DeleteRecipe(_ context.Context, id uint64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	delete(s.db.Recipes, id)
	for k := range s.db.Reviews {
		if k[1] == id {
			delete(s.db.Reviews, k)
		}
	}
	for k := range s.db.Favorites {
		if k[1] == id {
			delete(s.db.Favorites, k)
		}
	}
	for k, c := range s.db.Comments {
		if c.RecipeID == id {
			delete(s.db.Comments, k)
		}
	}
	return nil
}

type ReviewRepo struct{ db *DB }

func NewReviewRepo(db *DB) *ReviewRepo { return &ReviewRepo{db: db} }

var _ repository.ReviewRepo = (*ReviewRepo)(nil)

func (s *ReviewRepo) UpsertReview(_ context.Context, review *model.Review) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	key := [2]uint64{review.UserID, review.RecipeID}
	if prev, ok := s.db.Reviews[key]; ok {
		prev.Rating = review.Rating
		prev.UpdatedAt = time.Now()
		return true, nil
	}
	cp := *review
	cp.ID = s.db.id()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	s.db.Reviews[key] = &cp
	return false, nil
}

func (s *ReviewRepo) GetAverage(_ context.Context, recipeID uint64) (*model.RecipeRating, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	rating := &model.RecipeRating{RecipeID: recipeID}
	var sum float64
	for k, r := range s.db.Reviews {
		if k[1] == recipeID {
			sum += r.Rating
			rating.Count++
		}
	}
	if rating.Count > 0 {
		rating.Average = sum / float64(rating.Count)
	}
	return rating, nil
}

func (s *ReviewRepo) ListByRecipe(_ context.Context, recipeID uint64) ([]*model.Review, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]*model.Review, 0)
	for k, r := range s.db.Reviews {
		if k[1] == recipeID {
			cp := *r
			if u, ok := s.db.Users[r.UserID]; ok {
				cp.User = *u
			}
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *ReviewRepo) AllAverages(ctx context.Context) ([]*model.RecipeRating, error) {
	s.db.mu.Lock()
	ids := map[uint64]struct{}{}
	for k := range s.db.Reviews {
		ids[k[1]] = struct{}{}
	}
	s.db.mu.Unlock()

	out := make([]*model.RecipeRating, 0, len(ids))
	for id := range ids {
		r, _ := s.GetAverage(ctx, id)
		out = append(out, r)
	}
	return out, nil
}

type FavoriteRepo struct{ db *DB }

func NewFavoriteRepo(db *DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

var _ repository.FavoriteRepo = (*FavoriteRepo)(nil)

func (s *FavoriteRepo) Create(_ context.Context, userID, recipeID uint64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	key := [2]uint64{userID, recipeID}
	if _, ok := s.db.Favorites[key]; ok {
		return repository.ErrDuplicateKey
	}
	s.db.Favorites[key] = time.Now()
	return nil
}

func (s *FavoriteRepo) Delete(_ context.Context, userID, recipeID uint64) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	key := [2]uint64{userID, recipeID}
	if _, ok := s.db.Favorites[key]; !ok {
		return 0, nil
	}
	delete(s.db.Favorites, key)
	return 1, nil
}

func (s *FavoriteRepo) Exists(_ context.Context, userID, recipeID uint64) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	_, ok := s.db.Favorites[[2]uint64{userID, recipeID}]
	return ok, nil
}

func (s *FavoriteRepo) ListRecipeIDsByUser(_ context.Context, userID uint64) ([]uint64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	type fav struct {
		id uint64
		at time.Time
	}
	favs := make([]fav, 0)
	for k, at := range s.db.Favorites {
		if k[0] == userID {
			favs = append(favs, fav{k[1], at})
		}
	}
	sort.Slice(favs, func(i, j int) bool {
		if !favs[i].at.Equal(favs[j].at) {
			return favs[i].at.After(favs[j].at)
		}
		return favs[i].id > favs[j].id
	})
	ids := make([]uint64, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.id)
	}
	return ids, nil
}

type CategoryRepo struct{ db *DB }

func NewCategoryRepo(db *DB) *CategoryRepo { return &CategoryRepo{db: db} }

var _ repository.CategoryRepo = (*CategoryRepo)(nil)

func (s *CategoryRepo) GetCategoryByID(_ context.Context, id uint64) (*model.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.Categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *CategoryRepo) ListCategories(_ context.Context, offset, limit int) ([]*model.Category, int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	list := make([]*model.Category, 0, len(s.db.Categories))
	for _, c := range s.db.Categories {
		cp := *c
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	total := int64(len(list))
	if offset > len(list) {
		offset = len(list)
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end], total, nil
}

func (s *CategoryRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, c := range s.db.Categories {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *CategoryRepo) CreateCategory(_ context.Context, category *model.Category) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	category.ID = s.db.id()
	cp := *category
	s.db.Categories[category.ID] = &cp
	return nil
}

func (s *CategoryRepo) UpdateName(_ context.Context, id uint64, name string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if c, ok := s.db.Categories[id]; ok {
		c.Name = name
	}
	return nil
}

func (s *CategoryRepo) DeleteCategory(_ context.Context, id uint64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	delete(s.db.Categories, id)
	return nil
}

func (s *CategoryRepo) CountRecipes(_ context.Context, id uint64) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var n int64
	for _, r := range s.db.Recipes {
		if r.CategoryID == id {
			n++
		}
	}
	return n, nil
}

type CommentRepo struct{ db *DB }

func NewCommentRepo(db *DB) *CommentRepo { return &CommentRepo{db: db} }

var _ repository.CommentRepo = (*CommentRepo)(nil)

func (s *CommentRepo) hydrate(c *model.Comment) *model.Comment {
	cp := *c
	if u, ok := s.db.Users[c.UserID]; ok {
		cp.User = *u
	}
	if r, ok := s.db.Recipes[c.RecipeID]; ok {
		cp.Recipe = *r
	}
	return &cp
}

func (s *CommentRepo) list(pred func(*model.Comment) bool) []*model.Comment {
	out := make([]*model.Comment, 0)
	for _, c := range s.db.Comments {
		if pred(c) {
			out = append(out, s.hydrate(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *CommentRepo) GetCommentByID(_ context.Context, id uint64) (*model.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.Comments[id]
	if !ok {
		return nil, nil
	}
	return s.hydrate(c), nil
}

func (s *CommentRepo) ListAll(_ context.Context) ([]*model.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.list(func(*model.Comment) bool { return true }), nil
}

func (s *CommentRepo) ListByRecipe(_ context.Context, recipeID uint64, activeOnly bool) ([]*model.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.list(func(c *model.Comment) bool {
		return c.RecipeID == recipeID && (!activeOnly || c.Active)
	}), nil
}

func (s *CommentRepo) ListByUser(_ context.Context, userID uint64) ([]*model.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.list(func(c *model.Comment) bool { return c.UserID == userID }), nil
}

func (s *CommentRepo) CreateComment(_ context.Context, comment *model.Comment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	comment.ID = s.db.id()
	comment.CreatedAt = time.Now()
	cp := *comment
	cp.User, cp.Recipe = model.User{}, model.Recipe{}
	s.db.Comments[comment.ID] = &cp
	return nil
}

func (s *CommentRepo) UpdateText(_ context.Context, id uint64, text string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if c, ok := s.db.Comments[id]; ok {
		c.Text = text
	}
	return nil
}

func (s *CommentRepo) SetActive(_ context.Context, id uint64, active bool) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if c, ok := s.db.Comments[id]; ok {
		c.Active = active
	}
	return nil
}

func (s *CommentRepo) DeleteComment(_ context.Context, id uint64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	delete(s.db.Comments, id)
	return nil
}
