package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/feedsim/feedsim/internal/models"
	"github.com/feedsim/feedsim/internal/storage"
)

// rescoreWindow is the number of most recent posts rescored per pass.
const rescoreWindow = 100

// Scorer computes the 0-10 ranking score of posts from weighted engagement,
// recency and relevance sub-scores, each normalized to [0,1].
type Scorer struct {
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewScorer creates a scorer reading weights from the store's algorithm
// config.
func NewScorer(store storage.Store, logger *slog.Logger) *Scorer {
	return &Scorer{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Score computes the weighted score for a post at the given time, rounded to
// one decimal place. The config weights are assumed to sum to 1.
func (s *Scorer) Score(post *models.Post, config *models.AlgorithmConfig, now time.Time) float64 {
	// Engagement saturates linearly at 100 total engagements.
	engagementScore := math.Min(float64(post.TotalEngagements())/100, 1)

	// Recency decays linearly to zero over 24 hours.
	hoursAgo := now.Sub(post.CreatedAt).Hours()
	recencyScore := math.Max(0, 1-hoursAgo/24)

	// Relevance rewards hashtag density and content length up to 200 chars.
	hashtagBonus := float64(len(post.Hashtags)) * 0.1
	lengthScore := math.Min(float64(len(post.Content))/200, 1)
	relevanceScore := math.Min((hashtagBonus+lengthScore)/2, 1)

	finalScore := (engagementScore*config.EngagementWeight +
		recencyScore*config.RecencyWeight +
		relevanceScore*config.RelevanceWeight) * 10

	return round1(finalScore)
}

// Rescore recomputes and persists scores for the most recent posts, up to
// the given limit.
func (s *Scorer) Rescore(ctx context.Context, limit int) error {
	config, err := s.store.GetAlgorithmConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to get algorithm config: %w", err)
	}

	posts, err := s.store.ListPosts(ctx, limit, 0, storage.OrderByCreated)
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}

	now := s.now()
	for i := range posts {
		score := s.Score(&posts[i], config, now)
		if _, err := s.store.UpdatePost(ctx, posts[i].ID, models.PostUpdate{AlgorithmScore: &score}); err != nil {
			return fmt.Errorf("failed to update score for post %s: %w", posts[i].ID, err)
		}
	}
	return nil
}

// UpdateWeights normalizes the supplied raw weights, persists them and
// forces a full rescoring pass so the new weights take effect immediately.
func (s *Scorer) UpdateWeights(ctx context.Context, engagement, recency, relevance float64) (*models.AlgorithmConfig, error) {
	normEngagement, normRecency, normRelevance := NormalizeWeights(engagement, recency, relevance)

	config, err := s.store.UpdateAlgorithmConfig(ctx, models.ConfigUpdate{
		EngagementWeight: &normEngagement,
		RecencyWeight:    &normRecency,
		RelevanceWeight:  &normRelevance,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist weights: %w", err)
	}

	s.logger.Info("algorithm weights updated",
		"engagement", normEngagement,
		"recency", normRecency,
		"relevance", normRelevance,
	)

	if err := s.Rescore(ctx, rescoreWindow); err != nil {
		return nil, err
	}
	return config, nil
}

// NormalizeWeights scales three raw weights so they sum to 1, each rounded
// to two decimal places. A zero total yields all-zero weights rather than
// dividing by zero.
func NormalizeWeights(engagement, recency, relevance float64) (float64, float64, float64) {
	total := engagement + recency + relevance
	if total == 0 {
		return 0, 0, 0
	}
	return round2(engagement / total), round2(recency / total), round2(relevance / total)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
