package storage

import (
	"context"
	"errors"

	"github.com/feedsim/feedsim/internal/models"
)

// ErrNotFound is returned when a bot or post lookup misses.
var ErrNotFound = errors.New("not found")

// PostOrder selects the sort applied to post listings.
type PostOrder string

const (
	// OrderByScore sorts by algorithm score, highest first. Feed views use this.
	OrderByScore PostOrder = "score"
	// OrderByCreated sorts by creation time, newest first. The engine windows
	// (engagement and rescoring) use this so fresh posts are always processed.
	OrderByCreated PostOrder = "created"
)

// Store is the persistence collaborator consumed by the simulation engine and
// the API layer. Implementations assign IDs and creation timestamps on
// create. Updates are partial and last-write-wins per record. The algorithm
// config and simulation stats are singletons created lazily with defaults.
type Store interface {
	CreateBot(ctx context.Context, bot models.Bot) (*models.Bot, error)
	ListBots(ctx context.Context) ([]models.Bot, error)
	GetBot(ctx context.Context, id string) (*models.Bot, error)
	UpdateBot(ctx context.Context, id string, update models.BotUpdate) (*models.Bot, error)

	CreatePost(ctx context.Context, post models.Post) (*models.Post, error)
	// ListPosts returns posts in the given order. A limit <= 0 returns all
	// posts; offset skips past the first matching rows.
	ListPosts(ctx context.Context, limit, offset int, order PostOrder) ([]models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	UpdatePost(ctx context.Context, id string, update models.PostUpdate) (*models.Post, error)
	ListPostsByBot(ctx context.Context, botID string) ([]models.Post, error)

	CreateEngagement(ctx context.Context, engagement models.Engagement) (*models.Engagement, error)
	ListEngagements(ctx context.Context) ([]models.Engagement, error)
	ListEngagementsByPost(ctx context.Context, postID string) ([]models.Engagement, error)

	GetAlgorithmConfig(ctx context.Context) (*models.AlgorithmConfig, error)
	UpdateAlgorithmConfig(ctx context.Context, update models.ConfigUpdate) (*models.AlgorithmConfig, error)

	GetSimulationStats(ctx context.Context) (*models.SimulationStats, error)
	UpdateSimulationStats(ctx context.Context, update models.StatsUpdate) (*models.SimulationStats, error)
}
