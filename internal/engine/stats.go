package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/feedsim/feedsim/internal/models"
	"github.com/feedsim/feedsim/internal/storage"
)

// StatsAggregator derives the global simulation counters from the full
// post/bot/engagement collections and overwrites the singleton stats record
// wholesale.
type StatsAggregator struct {
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewStatsAggregator creates an aggregator over the given store.
func NewStatsAggregator(store storage.Store, logger *slog.Logger) *StatsAggregator {
	return &StatsAggregator{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Tick recomputes and persists the stats record: total posts, total
// engagements, active bot count, mean score, and posts created in the last
// 60 seconds.
func (a *StatsAggregator) Tick(ctx context.Context) (*models.SimulationStats, error) {
	posts, err := a.store.ListPosts(ctx, 0, 0, storage.OrderByCreated)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	bots, err := a.store.ListBots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bots: %w", err)
	}
	engagements, err := a.store.ListEngagements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list engagements: %w", err)
	}

	totalPosts := len(posts)
	totalEngagements := len(engagements)

	activeBots := 0
	for _, bot := range bots {
		if bot.IsActive {
			activeBots++
		}
	}

	avgScore := 0.0
	if totalPosts > 0 {
		sum := 0.0
		for _, post := range posts {
			sum += post.AlgorithmScore
		}
		avgScore = round1(sum / float64(totalPosts))
	}

	cutoff := a.now().Add(-time.Minute)
	postsPerMinute := 0
	for _, post := range posts {
		if post.CreatedAt.After(cutoff) {
			postsPerMinute++
		}
	}

	return a.store.UpdateSimulationStats(ctx, models.StatsUpdate{
		TotalPosts:       &totalPosts,
		TotalEngagements: &totalEngagements,
		AvgScore:         &avgScore,
		ActiveBots:       &activeBots,
		PostsPerMinute:   &postsPerMinute,
	})
}
