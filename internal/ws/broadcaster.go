package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/feedsim/feedsim/internal/engine"
	"github.com/feedsim/feedsim/internal/models"
	"github.com/feedsim/feedsim/internal/storage"
)

const (
	// snapshotInterval is the push cadence for live clients.
	snapshotInterval = time.Second

	// feedSize is how many top-ranked posts each snapshot carries.
	feedSize = 10
)

// Snapshot is the payload pushed to every client each second.
type Snapshot struct {
	Posts           []models.PostWithBot    `json:"posts"`
	Stats           *models.SimulationStats `json:"stats"`
	Config          *models.AlgorithmConfig `json:"config"`
	BotStatus       engine.SchedulerStatus  `json:"botStatus"`
	AlgorithmStatus engine.EngineStatus     `json:"algorithmStatus"`
	ActiveBots      int                     `json:"activeBots"`
}

// envelope wraps a snapshot in the message framing clients switch on.
type envelope struct {
	Type string   `json:"type"`
	Data Snapshot `json:"data"`
}

// Broadcaster periodically assembles a feed snapshot and hands it to the hub.
type Broadcaster struct {
	store      storage.Store
	controller *engine.Controller
	hub        *Hub
	logger     *slog.Logger
}

// NewBroadcaster creates a broadcaster over the given store and hub.
func NewBroadcaster(store storage.Store, controller *engine.Controller, hub *Hub, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		store:      store,
		controller: controller,
		hub:        hub,
		logger:     logger,
	}
}

// Run pushes snapshots every second until ctx is cancelled. Snapshots are
// pushed regardless of the simulation run state so paused dashboards still
// render current data.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(snapshotInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			payload, err := b.snapshotPayload(ctx)
			if err != nil {
				b.logger.Error("snapshot build failed", "error", err)
				continue
			}
			b.hub.Broadcast(payload)
		}
	}
}

func (b *Broadcaster) snapshotPayload(ctx context.Context) ([]byte, error) {
	snapshot, err := b.BuildSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(envelope{Type: "simulation_update", Data: *snapshot})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return payload, nil
}

// BuildSnapshot assembles the current simulation view: the top-ranked posts
// annotated with their authors, the latest stats and config, and the run
// state of both processes.
func (b *Broadcaster) BuildSnapshot(ctx context.Context) (*Snapshot, error) {
	posts, err := b.store.ListPosts(ctx, feedSize, 0, storage.OrderByScore)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	bots, err := b.store.ListBots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bots: %w", err)
	}
	stats, err := b.store.GetSimulationStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	config, err := b.store.GetAlgorithmConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get algorithm config: %w", err)
	}

	botsByID := make(map[string]*models.Bot, len(bots))
	activeBots := 0
	for i := range bots {
		botsByID[bots[i].ID] = &bots[i]
		if bots[i].IsActive {
			activeBots++
		}
	}

	annotated := make([]models.PostWithBot, len(posts))
	for i, post := range posts {
		annotated[i] = models.PostWithBot{Post: post, Bot: botsByID[post.BotID]}
	}

	state := b.controller.State()
	return &Snapshot{
		Posts:           annotated,
		Stats:           stats,
		Config:          config,
		BotStatus:       state.BotStatus,
		AlgorithmStatus: state.AlgorithmStatus,
		ActiveBots:      activeBots,
	}, nil
}
