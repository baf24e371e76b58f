package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/feedsim/feedsim/internal/metrics"
	"github.com/feedsim/feedsim/internal/models"
	"github.com/feedsim/feedsim/internal/storage"
)

const (
	minSpeed = 1
	maxSpeed = 10

	// Tick interval is max(1s, 10s - speed*900ms): 9.1s at speed 1 down to
	// the 1s floor at speed 10.
	baseIntervalMs = 10000
	speedStepMs    = 900
	minIntervalMs  = 1000

	defaultTickTimeout = 5 * time.Second
)

// SchedulerStatus reports the run state of the posting scheduler.
type SchedulerStatus struct {
	IsRunning bool `json:"isRunning"`
	Speed     int  `json:"speed"`
}

// PostingScheduler periodically selects an active bot, weighted by posting
// frequency, and publishes a generated post. It starts Paused. Start, Pause
// and SetSpeed are idempotent and safe for concurrent use; ticks are
// serialized on a single goroutine and a failed tick never stops the loop.
type PostingScheduler struct {
	store     storage.Store
	generator *ContentGenerator
	rng       *rand.Rand
	logger    *slog.Logger
	collector *metrics.Collector

	mu      sync.Mutex
	running bool
	speed   int
	stop    chan struct{}
}

// NewPostingScheduler creates a paused scheduler at the given initial speed.
func NewPostingScheduler(store storage.Store, generator *ContentGenerator, rng *rand.Rand, logger *slog.Logger, collector *metrics.Collector, speed int) *PostingScheduler {
	return &PostingScheduler{
		store:     store,
		generator: generator,
		rng:       rng,
		logger:    logger,
		collector: collector,
		speed:     clampSpeed(speed),
	}
}

// Start transitions Paused -> Running and begins ticking. No-op if already
// running.
func (p *PostingScheduler) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return
	}
	p.running = true
	p.stop = make(chan struct{})
	p.logger.Info("posting scheduler started", "speed", p.speed, "interval", p.interval())
	go p.run(p.stop, p.interval())
}

// Pause transitions Running -> Paused and cancels the pending tick. No-op if
// already paused.
func (p *PostingScheduler) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.running = false
	close(p.stop)
	p.logger.Info("posting scheduler paused")
}

// SetSpeed clamps speed to [1,10] and stores it. If the scheduler is running
// the ticking restarts with the new interval.
func (p *PostingScheduler) SetSpeed(speed int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.speed = clampSpeed(speed)
	if !p.running {
		return
	}
	close(p.stop)
	p.stop = make(chan struct{})
	p.logger.Info("posting scheduler speed changed", "speed", p.speed, "interval", p.interval())
	go p.run(p.stop, p.interval())
}

// Status returns the current run state and speed.
func (p *PostingScheduler) Status() SchedulerStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	return SchedulerStatus{IsRunning: p.running, Speed: p.speed}
}

func (p *PostingScheduler) interval() time.Duration {
	ms := baseIntervalMs - p.speed*speedStepMs
	if ms < minIntervalMs {
		ms = minIntervalMs
	}
	return time.Duration(ms) * time.Millisecond
}

func (p *PostingScheduler) run(stop chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.runTick()
		case <-stop:
			return
		}
	}
}

func (p *PostingScheduler) runTick() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTickTimeout)
	defer cancel()

	start := time.Now()
	if _, err := p.Tick(ctx); err != nil {
		p.logger.Error("posting tick failed", "error", err)
		p.collector.TickError("posting")
	}
	p.collector.ObserveTick("posting", time.Since(start))
}

// Tick performs one posting pass: pick an active bot weighted by
// ceil(posting frequency), generate content for its personality, and persist
// the post. With no active bots the tick is a no-op.
func (p *PostingScheduler) Tick(ctx context.Context) (*models.Post, error) {
	bots, err := p.store.ListBots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bots: %w", err)
	}

	var active []models.Bot
	for _, bot := range bots {
		if bot.IsActive {
			active = append(active, bot)
		}
	}
	if len(active) == 0 {
		return nil, nil
	}

	weights := make([]float64, len(active))
	for i, bot := range active {
		weights[i] = math.Ceil(bot.PostingFrequency)
	}
	idx := weightedPick(p.rng, weights)
	if idx < 0 {
		return nil, nil
	}
	selected := active[idx]

	generated := p.generator.Generate(selected.Personality)
	post := models.Post{
		BotID:    selected.ID,
		Content:  generated.Content,
		ImageURL: generated.ImageURL,
		Hashtags: generated.Hashtags,
	}

	created, err := p.store.CreatePost(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	p.collector.PostGenerated()
	p.logger.Debug("bot post created", "bot", selected.Username, "post_id", created.ID)
	return created, nil
}

func clampSpeed(speed int) int {
	if speed < minSpeed {
		return minSpeed
	}
	if speed > maxSpeed {
		return maxSpeed
	}
	return speed
}
