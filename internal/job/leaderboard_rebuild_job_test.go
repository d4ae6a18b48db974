package job

import (
	"RecipeHub/internal/api/dto"
	"RecipeHub/internal/pkg/consts"
	"RecipeHub/internal/service"
	"context"
	"errors"
	"testing"
	"time"
)

type fakeReviews struct {
	service.ReviewService
	calls int
	err   error
}

func (f *fakeReviews) RebuildLeaderboard(context.Context) (int, error) {
	f.calls++
	return 3, f.err
}

type fakeBest struct {
	invalidated int
}

func (f *fakeBest) GetBestRecipes(context.Context) ([]*dto.RecipeDTO, error) { return nil, nil }
func (f *fakeBest) Invalidate(context.Context) { f.invalidated++ }

func TestLeaderboardRebuildRuns(t *testing.T) {
	reviews, best := &fakeReviews{}, &fakeBest{}
	locker := NewLocalLocker()
	j := NewLeaderboardRebuildJob(reviews, best, locker)

	j.Run()
	j.Run()
	if reviews.calls != 2 || best.invalidated != 2 {
		t.Fatalf("calls = %d, invalidated = %d", reviews.calls, best.invalidated)
	}
	if ok, _ := locker.TryLock(context.Background(), consts.LeaderboardRebuildLock, "x", time.Minute); !ok {
		t.Fatal("lock not released after run")
	}
}

func TestLeaderboardRebuildSkipsWhenLocked(t *testing.T) {
	reviews, best := &fakeReviews{}, &fakeBest{}
	locker := NewLocalLocker()
	_, _ = locker.TryLock(context.Background(), consts.LeaderboardRebuildLock, "other", time.Minute)

	NewLeaderboardRebuildJob(reviews, best, locker).Run()
	if reviews.calls != 0 {
		t.Fatalf("rebuild ran while lock held: %d", reviews.calls)
	}
}

func TestLeaderboardRebuildErrorKeepsCache(t *testing.T) {
	reviews, best := &fakeReviews{err: errors.New("db down")}, &fakeBest{}
	NewLeaderboardRebuildJob(reviews, best, NewLocalLocker()).Run()
	if best.invalidated != 0 {
		t.Fatal("cache invalidated after failed rebuild")
	}
}

func TestLocalLockerOwnership(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()
	if ok, _ := l.TryLock(ctx, "k", "a", 0); !ok {
		t.Fatal("first lock failed")
	}
	l.Unlock(ctx, "k", "b")
	if ok, _ := l.TryLock(ctx, "k", "c", 0); ok {
		t.Fatal("lock released by non-owner")
	}
	l.Unlock(ctx, "k", "a")
	if ok, _ := l.TryLock(ctx, "k", "c", 0); !ok {
		t.Fatal("lock not released by owner")
	}
}
