package engine

import (
	"context"
	"math/rand"
	"testing"

	"github.com/feedsim/feedsim/internal/models"
	"github.com/feedsim/feedsim/internal/storage"
)

func newTestScheduler(store storage.Store, seed int64, speed int) *PostingScheduler {
	rng := rand.New(rand.NewSource(seed))
	return NewPostingScheduler(store, NewContentGenerator(rng), rng, testLogger(), nil, speed)
}

func TestPostingScheduler_TickNoBots(t *testing.T) {
	scheduler := newTestScheduler(storage.NewMemStore(), 1, 5)

	post, err := scheduler.Tick(context.Background())
	if err != nil {
		t.Fatalf("expected no error with empty population, got %v", err)
	}
	if post != nil {
		t.Fatalf("expected no post with empty population, got %+v", post)
	}
}

func TestPostingScheduler_TickSkipsInactiveBots(t *testing.T) {
	store := storage.NewMemStore()
	ctx := context.Background()

	active, err := store.CreateBot(ctx, models.Bot{
		Username:         "@CoffeeFan_1",
		Personality:      models.PersonalityCasual,
		IsActive:         true,
		PostingFrequency: 2,
	})
	if err != nil {
		t.Fatalf("CreateBot failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := store.CreateBot(ctx, models.Bot{
			Username:         "@TechGuru_inactive",
			Personality:      models.PersonalityInfluencer,
			IsActive:         false,
			PostingFrequency: 8,
		}); err != nil {
			t.Fatalf("CreateBot failed: %v", err)
		}
	}

	scheduler := newTestScheduler(store, 2, 5)
	for i := 0; i < 50; i++ {
		post, err := scheduler.Tick(ctx)
		if err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
		if post == nil {
			t.Fatal("expected a post while an active bot exists")
		}
		if post.BotID != active.ID {
			t.Fatalf("post attributed to inactive bot %s", post.BotID)
		}
		if post.LikesCount != 0 || post.CommentsCount != 0 || post.SharesCount != 0 || post.AlgorithmScore != 0 {
			t.Fatalf("new post has non-zero counters: %+v", post)
		}
		if post.Content == "" {
			t.Fatal("new post has empty content")
		}
	}
}

func TestPostingScheduler_OnlyInactiveBots(t *testing.T) {
	store := storage.NewMemStore()
	ctx := context.Background()

	if _, err := store.CreateBot(ctx, models.Bot{
		Username:         "@SilentBot_1",
		Personality:      models.PersonalityLurker,
		IsActive:         false,
		PostingFrequency: 0.5,
	}); err != nil {
		t.Fatalf("CreateBot failed: %v", err)
	}

	scheduler := newTestScheduler(store, 3, 5)
	post, err := scheduler.Tick(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if post != nil {
		t.Fatalf("expected no post when every bot is inactive, got %+v", post)
	}
}

func TestPostingScheduler_StartPauseIdempotent(t *testing.T) {
	scheduler := newTestScheduler(storage.NewMemStore(), 4, 5)

	if status := scheduler.Status(); status.IsRunning {
		t.Fatal("scheduler should start paused")
	}

	scheduler.Start()
	scheduler.Start()
	if status := scheduler.Status(); !status.IsRunning {
		t.Fatal("scheduler should be running after Start")
	}

	scheduler.Pause()
	scheduler.Pause()
	if status := scheduler.Status(); status.IsRunning {
		t.Fatal("scheduler should be paused after Pause")
	}
}

func TestPostingScheduler_SpeedClamping(t *testing.T) {
	tests := []struct {
		name  string
		speed int
		want  int
	}{
		{"below minimum", 0, 1},
		{"negative", -5, 1},
		{"within range", 7, 7},
		{"above maximum", 99, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheduler := newTestScheduler(storage.NewMemStore(), 5, 5)
			scheduler.SetSpeed(tt.speed)

			status := scheduler.Status()
			if status.Speed != tt.want {
				t.Errorf("expected speed %d, got %d", tt.want, status.Speed)
			}
			if status.IsRunning {
				t.Error("SetSpeed on a paused scheduler must not start it")
			}
		})
	}
}

func TestPostingScheduler_Interval(t *testing.T) {
	tests := []struct {
		speed  int
		wantMs int
	}{
		{1, 9100},
		{5, 5500},
		{10, 1000},
	}

	for _, tt := range tests {
		scheduler := newTestScheduler(storage.NewMemStore(), 6, tt.speed)
		if got := scheduler.interval().Milliseconds(); got != int64(tt.wantMs) {
			t.Errorf("speed %d: expected %dms interval, got %dms", tt.speed, tt.wantMs, got)
		}
	}
}
