package engine

import (
	"context"
	"testing"
	"time"

	"github.com/feedsim/feedsim/internal/models"
	"github.com/feedsim/feedsim/internal/storage"
)

func TestStatsAggregator_Tick(t *testing.T) {
	store := storage.NewMemStore()
	ctx := context.Background()

	active, err := store.CreateBot(ctx, models.Bot{Username: "@CoffeeFan_1", IsActive: true})
	if err != nil {
		t.Fatalf("CreateBot failed: %v", err)
	}
	if _, err := store.CreateBot(ctx, models.Bot{Username: "@SilentBot_1", IsActive: false}); err != nil {
		t.Fatalf("CreateBot failed: %v", err)
	}

	scores := []float64{4.0, 5.0}
	for _, score := range scores {
		post, err := store.CreatePost(ctx, models.Post{BotID: active.ID, Content: "post"})
		if err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}
		s := score
		if _, err := store.UpdatePost(ctx, post.ID, models.PostUpdate{AlgorithmScore: &s}); err != nil {
			t.Fatalf("UpdatePost failed: %v", err)
		}
		for i := 0; i < 3; i++ {
			if _, err := store.CreateEngagement(ctx, models.Engagement{PostID: post.ID, BotID: active.ID, Type: models.EngagementLike}); err != nil {
				t.Fatalf("CreateEngagement failed: %v", err)
			}
		}
	}

	aggregator := NewStatsAggregator(store, testLogger())
	stats, err := aggregator.Tick(ctx)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	if stats.TotalPosts != 2 {
		t.Errorf("TotalPosts = %d, want 2", stats.TotalPosts)
	}
	if stats.TotalEngagements != 6 {
		t.Errorf("TotalEngagements = %d, want 6", stats.TotalEngagements)
	}
	if stats.ActiveBots != 1 {
		t.Errorf("ActiveBots = %d, want 1", stats.ActiveBots)
	}
	if stats.AvgScore != 4.5 {
		t.Errorf("AvgScore = %v, want 4.5", stats.AvgScore)
	}
	if stats.PostsPerMinute != 2 {
		t.Errorf("PostsPerMinute = %d, want 2 for just-created posts", stats.PostsPerMinute)
	}

	// The same posts fall out of the rolling window two minutes later.
	aggregator.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	stats, err = aggregator.Tick(ctx)
	if err != nil {
		t.Fatalf("second Tick failed: %v", err)
	}
	if stats.PostsPerMinute != 0 {
		t.Errorf("PostsPerMinute = %d, want 0 outside the window", stats.PostsPerMinute)
	}
}

func TestStatsAggregator_EmptyStore(t *testing.T) {
	aggregator := NewStatsAggregator(storage.NewMemStore(), testLogger())

	stats, err := aggregator.Tick(context.Background())
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if stats.TotalPosts != 0 || stats.TotalEngagements != 0 || stats.ActiveBots != 0 {
		t.Errorf("expected zeroed totals, got %+v", stats)
	}
	if stats.AvgScore != 0 {
		t.Errorf("AvgScore = %v, want 0 with no posts", stats.AvgScore)
	}
}
