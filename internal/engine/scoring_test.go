package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/feedsim/feedsim/internal/models"
	"github.com/feedsim/feedsim/internal/storage"
)

func TestScorer_Score(t *testing.T) {
	now := time.Now()
	scorer := NewScorer(storage.NewMemStore(), testLogger())

	engagementOnly := &models.AlgorithmConfig{EngagementWeight: 1}
	recencyOnly := &models.AlgorithmConfig{RecencyWeight: 1}
	relevanceOnly := &models.AlgorithmConfig{RelevanceWeight: 1}

	tests := []struct {
		name   string
		post   models.Post
		config *models.AlgorithmConfig
		want   float64
	}{
		{
			name:   "50 engagements scores half",
			post:   models.Post{LikesCount: 50, CreatedAt: now},
			config: engagementOnly,
			want:   5.0,
		},
		{
			name:   "100 engagements saturates",
			post:   models.Post{LikesCount: 60, CommentsCount: 30, SharesCount: 10, CreatedAt: now},
			config: engagementOnly,
			want:   10.0,
		},
		{
			name:   "engagement beyond 100 stays saturated",
			post:   models.Post{LikesCount: 500, CreatedAt: now},
			config: engagementOnly,
			want:   10.0,
		},
		{
			name:   "fresh post has full recency",
			post:   models.Post{CreatedAt: now},
			config: recencyOnly,
			want:   10.0,
		},
		{
			name:   "12 hour old post has half recency",
			post:   models.Post{CreatedAt: now.Add(-12 * time.Hour)},
			config: recencyOnly,
			want:   5.0,
		},
		{
			name:   "recency floors at 24 hours",
			post:   models.Post{CreatedAt: now.Add(-30 * time.Hour)},
			config: recencyOnly,
			want:   0.0,
		},
		{
			name: "relevance from hashtags and length",
			post: models.Post{
				Content:   strings.Repeat("x", 200),
				Hashtags:  []string{"life", "mood", "fun", "food"},
				CreatedAt: now,
			},
			config: relevanceOnly,
			want:   7.0, // (4*0.1 + 1) / 2
		},
		{
			name:   "empty post scores zero relevance",
			post:   models.Post{CreatedAt: now},
			config: relevanceOnly,
			want:   0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(&tt.post, tt.config, now)
			if got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 10 {
				t.Errorf("Score() = %v outside [0,10]", got)
			}
		})
	}
}

func TestScorer_ScoreMonotonicInEngagement(t *testing.T) {
	now := time.Now()
	scorer := NewScorer(storage.NewMemStore(), testLogger())
	config := models.DefaultAlgorithmConfig()

	prev := -1.0
	for likes := 0; likes <= 100; likes += 10 {
		post := models.Post{LikesCount: likes, CreatedAt: now}
		score := scorer.Score(&post, &config, now)
		if score < prev {
			t.Fatalf("score decreased from %v to %v at %d likes", prev, score, likes)
		}
		prev = score
	}
}

func TestScorer_Rescore(t *testing.T) {
	store := storage.NewMemStore()
	ctx := context.Background()

	weight := 1.0
	zero := 0.0
	if _, err := store.UpdateAlgorithmConfig(ctx, models.ConfigUpdate{
		EngagementWeight: &weight,
		RecencyWeight:    &zero,
		RelevanceWeight:  &zero,
	}); err != nil {
		t.Fatalf("UpdateAlgorithmConfig failed: %v", err)
	}

	post, err := store.CreatePost(ctx, models.Post{BotID: "b1", Content: "hello"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	likes := 50
	if _, err := store.UpdatePost(ctx, post.ID, models.PostUpdate{LikesCount: &likes}); err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}

	scorer := NewScorer(store, testLogger())
	if err := scorer.Rescore(ctx, rescoreWindow); err != nil {
		t.Fatalf("Rescore failed: %v", err)
	}

	updated, err := store.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if updated.AlgorithmScore != 5.0 {
		t.Errorf("expected score 5.0 with 50 engagements under engagement-only weights, got %v", updated.AlgorithmScore)
	}
}

func TestScorer_UpdateWeights(t *testing.T) {
	store := storage.NewMemStore()
	ctx := context.Background()

	post, err := store.CreatePost(ctx, models.Post{BotID: "b1", Content: "fresh"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	scorer := NewScorer(store, testLogger())
	config, err := scorer.UpdateWeights(ctx, 40, 30, 30)
	if err != nil {
		t.Fatalf("UpdateWeights failed: %v", err)
	}

	if config.EngagementWeight != 0.4 || config.RecencyWeight != 0.3 || config.RelevanceWeight != 0.3 {
		t.Errorf("weights not normalized: %+v", config)
	}

	// A fresh post gains recency-weighted score once the pass runs.
	updated, err := store.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if updated.AlgorithmScore == 0 {
		t.Error("expected rescoring to run after a weight update")
	}
}

func TestNormalizeWeights(t *testing.T) {
	tests := []struct {
		name       string
		engagement float64
		recency    float64
		relevance  float64
		wantE      float64
		wantRec    float64
		wantRel    float64
	}{
		{"percent style", 40, 30, 30, 0.4, 0.3, 0.3},
		{"already normalized", 0.4, 0.3, 0.3, 0.4, 0.3, 0.3},
		{"equal thirds round to 2dp", 1, 1, 1, 0.33, 0.33, 0.33},
		{"single weight", 5, 0, 0, 1, 0, 0},
		{"zero total", 0, 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec, rel := NormalizeWeights(tt.engagement, tt.recency, tt.relevance)
			if e != tt.wantE || rec != tt.wantRec || rel != tt.wantRel {
				t.Errorf("NormalizeWeights(%v, %v, %v) = (%v, %v, %v), want (%v, %v, %v)",
					tt.engagement, tt.recency, tt.relevance, e, rec, rel, tt.wantE, tt.wantRec, tt.wantRel)
			}
		})
	}
}
