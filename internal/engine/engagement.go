package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/feedsim/feedsim/internal/metrics"
	"github.com/feedsim/feedsim/internal/models"
	"github.com/feedsim/feedsim/internal/storage"
)

const (
	// engagementWindow is how many of the most recent posts receive
	// simulated engagement per tick.
	engagementWindow = 20

	// engagementMaxAge cuts off engagement for old posts.
	engagementMaxAge = 24 * time.Hour

	// engagementRateFactor scales a bot's engagement rate into a per-tick
	// Bernoulli probability.
	engagementRateFactor = 0.1
)

var cannedComments = []string{
	"Great post!",
	"Love this! 💙",
	"So inspiring!",
	"Thanks for sharing",
	"This is amazing!",
	"Couldn't agree more",
	"Well said!",
	"Exactly what I needed to see today",
	"This hits different 🔥",
	"Facts! 💯",
}

// EngagementSimulator samples likes, comments and shares from active bots
// against recent posts. Each engagement is persisted immediately: the post
// counter update and the engagement record, in that order.
type EngagementSimulator struct {
	store     storage.Store
	rng       *rand.Rand
	logger    *slog.Logger
	collector *metrics.Collector
	now       func() time.Time
}

// NewEngagementSimulator creates a simulator backed by the given PRNG.
func NewEngagementSimulator(store storage.Store, rng *rand.Rand, logger *slog.Logger, collector *metrics.Collector) *EngagementSimulator {
	return &EngagementSimulator{
		store:     store,
		rng:       rng,
		logger:    logger,
		collector: collector,
		now:       time.Now,
	}
}

// Tick runs one engagement pass over the most recent posts and returns the
// number of engagements created. Posts older than 24 hours are skipped. For
// each eligible post every other active bot engages independently with
// probability engagementRate*0.1, choosing like/comment/share at fixed
// 0.7/0.2/0.1 odds.
func (e *EngagementSimulator) Tick(ctx context.Context) (int, error) {
	posts, err := e.store.ListPosts(ctx, engagementWindow, 0, storage.OrderByCreated)
	if err != nil {
		return 0, fmt.Errorf("failed to list posts: %w", err)
	}

	bots, err := e.store.ListBots(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list bots: %w", err)
	}

	now := e.now()
	created := 0

	for i := range posts {
		post := posts[i]
		if now.Sub(post.CreatedAt) > engagementMaxAge {
			continue
		}

		for _, bot := range bots {
			if bot.ID == post.BotID || !bot.IsActive {
				continue
			}
			if e.rng.Float64() >= bot.EngagementRate*engagementRateFactor {
				continue
			}

			engagementType := e.pickType()
			update := models.PostUpdate{}
			switch engagementType {
			case models.EngagementLike:
				post.LikesCount++
				update.LikesCount = &post.LikesCount
			case models.EngagementComment:
				post.CommentsCount++
				update.CommentsCount = &post.CommentsCount
			case models.EngagementShare:
				post.SharesCount++
				update.SharesCount = &post.SharesCount
			}

			if _, err := e.store.UpdatePost(ctx, post.ID, update); err != nil {
				return created, fmt.Errorf("failed to update counters for post %s: %w", post.ID, err)
			}

			engagement := models.Engagement{
				PostID: post.ID,
				BotID:  bot.ID,
				Type:   engagementType,
			}
			if engagementType == models.EngagementComment {
				engagement.Content = cannedComments[e.rng.Intn(len(cannedComments))]
			}
			if _, err := e.store.CreateEngagement(ctx, engagement); err != nil {
				return created, fmt.Errorf("failed to record engagement: %w", err)
			}

			e.collector.EngagementSimulated(string(engagementType))
			created++
		}
	}

	return created, nil
}

// pickType draws an engagement type at P(like)=0.7, P(comment)=0.2,
// P(share)=0.1.
func (e *EngagementSimulator) pickType() models.EngagementType {
	r := e.rng.Float64()
	if r < 0.7 {
		return models.EngagementLike
	}
	if r < 0.9 {
		return models.EngagementComment
	}
	return models.EngagementShare
}
