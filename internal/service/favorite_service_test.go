package service

import (
	"RecipeHub/internal/api/dto"
	"RecipeHub/internal/model"
	"context"
	"errors"
	"testing"
)

func TestToggleFavoriteTwice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	r := f.recipe("Pancakes", model.StatusApproved)
	alice := f.as(f.alice)

	on, err := f.favorites.ToggleFavorite(ctx, alice, r.Slug)
	if err != nil || !on {
		t.Fatalf("first toggle = %v, %v", on, err)
	}
	if !f.db.HasFavorite(f.alice.ID, r.ID) {
		t.Fatal("relation missing after first toggle")
	}
	on, err = f.favorites.ToggleFavorite(ctx, alice, r.Slug)
	if err != nil || on {
		t.Fatalf("second toggle = %v, %v", on, err)
	}
	if f.db.HasFavorite(f.alice.ID, r.ID) {
		t.Fatal("relation still present after second toggle")
	}
}

func TestAddRemoveFavorite(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	r := f.recipe("Waffles", model.StatusApproved)
	alice := f.as(f.alice)

	if err := f.favorites.AddFavorite(ctx, alice, r.Slug); err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}
	if err := f.favorites.AddFavorite(ctx, alice, r.Slug); !errors.Is(err, ErrAlreadyFavorited) {
		t.Fatalf("duplicate add err = %v", err)
	}
	if err := f.favorites.RemoveFavorite(ctx, alice, r.Slug); err != nil {
		t.Fatalf("RemoveFavorite: %v", err)
	}
	if err := f.favorites.RemoveFavorite(ctx, alice, r.Slug); !errors.Is(err, ErrNotFavorited) {
		t.Fatalf("second remove err = %v", err)
	}
}

func TestFavoriteRejectsOwnerAndHidden(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	approved := f.recipe("Omelette", model.StatusApproved)
	pending := f.recipe("Quiche", model.StatusInProcess)

	if err := f.favorites.AddFavorite(ctx, f.as(f.owner), approved.Slug); !errors.Is(err, ErrSelfFavorite) {
		t.Fatalf("owner add err = %v", err)
	}
	if _, err := f.favorites.ToggleFavorite(ctx, f.as(f.owner), approved.Slug); !errors.Is(err, ErrSelfFavorite) {
		t.Fatalf("owner toggle err = %v", err)
	}
	if err := f.favorites.AddFavorite(ctx, f.as(f.alice), pending.Slug); !errors.Is(err, ErrRecipeNotFound) {
		t.Fatalf("pending add err = %v", err)
	}
	if f.db.HasFavorite(f.owner.ID, approved.ID) || f.db.HasFavorite(f.alice.ID, pending.ID) {
		t.Fatal("rejected favorite was persisted")
	}
}

func TestRemoveSavedAndListSaved(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.recipe("Bagel", model.StatusApproved)
	b := f.recipe("Croissant", model.StatusApproved)
	alice := f.as(f.alice)

	_ = f.favorites.AddFavorite(ctx, alice, a.Slug)
	_ = f.favorites.AddFavorite(ctx, alice, b.Slug)

	saved, err := f.favorites.ListSaved(ctx, alice)
	if err != nil || len(saved) != 2 {
		t.Fatalf("ListSaved = %v, %v", saved, err)
	}
	if _, ok := saved[0].(*dto.RecipeDTO); !ok {
		t.Fatalf("non-staff saved entry type %T", saved[0])
	}

	// 收藏后菜谱被驳回，从列表中消失
	_ = f.recipeRepo.UpdateRecipeStatus(ctx, b.ID, model.StatusRejected)
	saved, _ = f.favorites.ListSaved(ctx, alice)
	if len(saved) != 1 || saved[0].(*dto.RecipeDTO).Slug != a.Slug {
		t.Fatalf("ListSaved after reject = %v", saved)
	}

	removed, err := f.favorites.RemoveSaved(ctx, alice, a.Slug)
	if err != nil || !removed {
		t.Fatalf("RemoveSaved = %v, %v", removed, err)
	}
	removed, _ = f.favorites.RemoveSaved(ctx, alice, a.Slug)
	if removed {
		t.Fatal("RemoveSaved reported removal of absent relation")
	}
}

func TestIsFavoritedAnonymous(t *testing.T) {
	f := newFixture()
	fav, err := f.favorites.IsFavorited(context.Background(), 0, 1)
	if err != nil || fav {
		t.Fatalf("IsFavorited(anonymous) = %v, %v", fav, err)
	}
}
