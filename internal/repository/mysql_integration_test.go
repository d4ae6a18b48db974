//go:build integration

package repository

import (
	"RecipeHub/internal/api/config"
	"RecipeHub/internal/model"
	"RecipeHub/internal/pkg/database"
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func startMySQL(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mysql:8.0",
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "secret",
				"MYSQL_DATABASE":      "recipehub",
			},
			WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(3 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("mysql container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate mysql container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("endpoint: %v", err)
	}
	cfg := &config.DBConfig{
		DSN:         "root:secret@tcp(" + endpoint + ")/recipehub?charset=utf8mb4&parseTime=True&loc=Local",
		MaxIdle:     2,
		MaxOpen:     4,
		MaxLifetime: 60,
		AutoMigrate: true,
	}

	// 日志就绪后端口偶尔仍未接受连接
	var db *gorm.DB
	for attempt := 0; attempt < 10; attempt++ {
		if db, err = database.NewGormDB(cfg); err == nil {
			return db
		}
		time.Sleep(time.Second)
	}
	t.Fatalf("NewGormDB: %v", err)
	return nil
}

type seed struct {
	alice, bob *model.User
	dessert    *model.Category
	recipes    map[string]*model.Recipe
}

func seedRecipes(t *testing.T, db *gorm.DB) *seed {
	t.Helper()
	ctx := context.Background()
	s := &seed{recipes: map[string]*model.Recipe{}}

	users := NewUserRepo(db)
	s.alice = &model.User{Username: "alice", Email: "alice@example.com"}
	s.bob = &model.User{Username: "bob", Email: "bob@example.com"}
	for _, u := range []*model.User{s.alice, s.bob} {
		if err := users.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser %s: %v", u.Username, err)
		}
	}

	s.dessert = &model.Category{Name: "Dessert", Slug: "dessert"}
	if err := NewCategoryRepo(db).CreateCategory(ctx, s.dessert); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	recipes := NewRecipeRepo(db)
	for _, r := range []struct {
		name    string
		minutes int
		status  model.ModerationStatus
	}{
		{"Brownie", 40, model.StatusApproved},
		{"Cheesecake", 90, model.StatusApproved},
		{"Pudding", 15, model.StatusApproved},
		{"Secret Pie", 60, model.StatusInProcess},
	} {
		minutes := r.minutes
		recipe := &model.Recipe{
			UserID:           s.alice.ID,
			CategoryID:       s.dessert.ID,
			Name:             r.name,
			Slug:             slugOf(r.name),
			RecipeText:       "Bake.",
			Servings:         4,
			CookingTime:      &minutes,
			ModerationStatus: r.status,
		}
		if err := recipes.CreateRecipe(ctx, recipe); err != nil {
			t.Fatalf("CreateRecipe %s: %v", r.name, err)
		}
		s.recipes[r.name] = recipe
	}
	return s
}

func slugOf(name string) string {
	out := make([]byte, 0, len(name))
	for _, c := range []byte(name) {
		switch {
		case c == ' ':
			out = append(out, '-')
		case c >= 'A' && c <= 'Z':
			out = append(out, c+'a'-'A')
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

func TestRepositoriesAgainstMySQL(t *testing.T) {
	db := startMySQL(t)
	s := seedRecipes(t, db)
	ctx := context.Background()
	brownie := s.recipes["Brownie"]

	t.Run("UpsertReviewIsIdempotent", func(t *testing.T) {
		reviews := NewReviewRepo(db)
		existed, err := reviews.UpsertReview(ctx, &model.Review{UserID: s.alice.ID, RecipeID: brownie.ID, Rating: 3})
		if err != nil || existed {
			t.Fatalf("first upsert = %v, %v", existed, err)
		}
		existed, err = reviews.UpsertReview(ctx, &model.Review{UserID: s.alice.ID, RecipeID: brownie.ID, Rating: 4})
		if err != nil || !existed {
			t.Fatalf("second upsert = %v, %v", existed, err)
		}

		var rows []model.Review
		if err = db.Where("user_id = ? AND recipe_id = ?", s.alice.ID, brownie.ID).Find(&rows).Error; err != nil {
			t.Fatalf("select reviews: %v", err)
		}
		if len(rows) != 1 || rows[0].Rating != 4 {
			t.Fatalf("rows = %+v", rows)
		}
	})

	t.Run("Averages", func(t *testing.T) {
		reviews := NewReviewRepo(db)
		if _, err := reviews.UpsertReview(ctx, &model.Review{UserID: s.bob.ID, RecipeID: brownie.ID, Rating: 5}); err != nil {
			t.Fatalf("bob upsert: %v", err)
		}
		pudding := s.recipes["Pudding"]
		if _, err := reviews.UpsertReview(ctx, &model.Review{UserID: s.bob.ID, RecipeID: pudding.ID, Rating: 2}); err != nil {
			t.Fatalf("pudding upsert: %v", err)
		}

		avg, err := reviews.GetAverage(ctx, brownie.ID)
		if err != nil {
			t.Fatalf("GetAverage: %v", err)
		}
		if math.Abs(avg.Average-4.5) > 1e-9 || avg.Count != 2 {
			t.Fatalf("brownie average = %+v", avg)
		}

		empty, err := reviews.GetAverage(ctx, s.recipes["Cheesecake"].ID)
		if err != nil || empty.Average != 0 || empty.Count != 0 {
			t.Fatalf("unrated average = %+v, %v", empty, err)
		}

		all, err := reviews.AllAverages(ctx)
		if err != nil {
			t.Fatalf("AllAverages: %v", err)
		}
		got := map[uint64]float64{}
		for _, r := range all {
			got[r.RecipeID] = r.Average
		}
		if len(got) != 2 || math.Abs(got[brownie.ID]-4.5) > 1e-9 || math.Abs(got[pudding.ID]-2) > 1e-9 {
			t.Fatalf("all averages = %v", got)
		}
	})

	t.Run("FavoriteDuplicate", func(t *testing.T) {
		favorites := NewFavoriteRepo(db)
		if err := favorites.Create(ctx, s.bob.ID, brownie.ID); err != nil {
			t.Fatalf("first favorite: %v", err)
		}
		if err := favorites.Create(ctx, s.bob.ID, brownie.ID); !errors.Is(err, ErrDuplicateKey) {
			t.Fatalf("duplicate favorite err = %v", err)
		}
		if ok, err := favorites.Exists(ctx, s.bob.ID, brownie.ID); err != nil || !ok {
			t.Fatalf("Exists = %v, %v", ok, err)
		}
		if n, err := favorites.Delete(ctx, s.bob.ID, brownie.ID); err != nil || n != 1 {
			t.Fatalf("Delete = %d, %v", n, err)
		}
		if n, err := favorites.Delete(ctx, s.bob.ID, brownie.ID); err != nil || n != 0 {
			t.Fatalf("second Delete = %d, %v", n, err)
		}
	})

	t.Run("ListRecipesOrdering", func(t *testing.T) {
		recipes := NewRecipeRepo(db)
		list, total, err := recipes.ListRecipes(ctx, &RecipeQuery{
			Statuses: []model.ModerationStatus{model.StatusApproved},
			Ordering: "-cooking_time",
			Limit:    10,
		})
		if err != nil {
			t.Fatalf("ListRecipes: %v", err)
		}
		if total != 3 || len(list) != 3 {
			t.Fatalf("total = %d, len = %d", total, len(list))
		}
		want := []string{"Cheesecake", "Brownie", "Pudding"}
		for i, r := range list {
			if r.Name != want[i] {
				t.Fatalf("order[%d] = %s, want %s", i, r.Name, want[i])
			}
			if r.User.Username != "alice" || r.Category.Name != "Dessert" {
				t.Fatalf("preload missing on %s: %+v %+v", r.Name, r.User, r.Category)
			}
		}

		byName, _, err := recipes.ListRecipes(ctx, &RecipeQuery{CategoryName: "Dessert", Search: "pie", Limit: 10})
		if err != nil || len(byName) != 1 || byName[0].Name != "Secret Pie" {
			t.Fatalf("search = %v, %v", byName, err)
		}
	})

	t.Run("CreateRecipeDuplicateSlug", func(t *testing.T) {
		recipes := NewRecipeRepo(db)
		dup := &model.Recipe{
			UserID:     s.bob.ID,
			CategoryID: s.dessert.ID,
			Name:       "Brownie",
			Slug:       brownie.Slug,
			RecipeText: "Again.",
			Servings:   2,
		}
		if err := recipes.CreateRecipe(ctx, dup); !errors.Is(err, ErrDuplicateKey) {
			t.Fatalf("duplicate slug err = %v", err)
		}
		if ok, err := recipes.SlugExists(ctx, brownie.Slug); err != nil || !ok {
			t.Fatalf("SlugExists = %v, %v", ok, err)
		}
	})
}
