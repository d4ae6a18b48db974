package service

import (
	"context"
	"testing"
)

func TestViewTrackerCountsOncePerUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if got := f.views.Track(ctx, f.alice.ID, 1); got != 1 {
		t.Fatalf("first view = %d, want 1", got)
	}
	for i := 0; i < 3; i++ {
		if got := f.views.Track(ctx, f.alice.ID, 1); got != 1 {
			t.Fatalf("repeat view = %d, want 1", got)
		}
	}
	if got := f.views.Track(ctx, f.bob.ID, 1); got != 2 {
		t.Fatalf("second user view = %d, want 2", got)
	}
	if got := f.views.Track(ctx, 0, 1); got != 2 {
		t.Fatalf("anonymous view = %d, want 2", got)
	}
	if got := f.views.Views(ctx, 2); got != 0 {
		t.Fatalf("untouched recipe views = %d, want 0", got)
	}
}

func TestViewTrackerStoreFailure(t *testing.T) {
	views := NewViewTracker(failingStore{})
	if got := views.Track(context.Background(), 1, 1); got != 0 {
		t.Fatalf("Track on failing store = %d, want 0", got)
	}
	if got := views.Views(context.Background(), 1); got != 0 {
		t.Fatalf("Views on failing store = %d, want 0", got)
	}
}
