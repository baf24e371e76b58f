package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/feedsim/feedsim/internal/metrics"
)

// algorithmInterval is the fixed cadence of the engagement/scoring/stats
// loop.
const algorithmInterval = 2 * time.Second

// EngineStatus reports the run state of the algorithm loop.
type EngineStatus struct {
	IsRunning bool `json:"isRunning"`
}

// AlgorithmEngine drives the engagement simulator, scorer and stats
// aggregator on a fixed 2-second cadence. Like the posting scheduler it
// starts Paused, serializes ticks on one goroutine, and isolates per-tick
// failures.
type AlgorithmEngine struct {
	engagement *EngagementSimulator
	scorer     *Scorer
	stats      *StatsAggregator
	logger     *slog.Logger
	collector  *metrics.Collector

	mu      sync.Mutex
	running bool
	stop    chan struct{}
}

// NewAlgorithmEngine composes the engagement/scoring/stats triple into one
// paused periodic process.
func NewAlgorithmEngine(engagement *EngagementSimulator, scorer *Scorer, stats *StatsAggregator, logger *slog.Logger, collector *metrics.Collector) *AlgorithmEngine {
	return &AlgorithmEngine{
		engagement: engagement,
		scorer:     scorer,
		stats:      stats,
		logger:     logger,
		collector:  collector,
	}
}

// Start begins the loop. No-op if already running.
func (a *AlgorithmEngine) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.running {
		return
	}
	a.running = true
	a.stop = make(chan struct{})
	a.logger.Info("algorithm engine started", "interval", algorithmInterval)
	go a.run(a.stop)
}

// Pause stops the loop. No-op if already paused.
func (a *AlgorithmEngine) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.running {
		return
	}
	a.running = false
	close(a.stop)
	a.logger.Info("algorithm engine paused")
}

// Status returns the current run state.
func (a *AlgorithmEngine) Status() EngineStatus {
	a.mu.Lock()
	defer a.mu.Unlock()

	return EngineStatus{IsRunning: a.running}
}

func (a *AlgorithmEngine) run(stop chan struct{}) {
	ticker := time.NewTicker(algorithmInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.runTick()
		case <-stop:
			return
		}
	}
}

// runTick executes one engagement/scoring/stats pass. A failed stage aborts
// the remainder of the tick; mutations already applied stay in place and the
// next tick self-corrects.
func (a *AlgorithmEngine) runTick() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTickTimeout)
	defer cancel()

	start := time.Now()
	defer func() {
		a.collector.ObserveTick("algorithm", time.Since(start))
	}()

	if _, err := a.engagement.Tick(ctx); err != nil {
		a.logger.Error("engagement simulation failed", "error", err)
		a.collector.TickError("algorithm")
		return
	}
	if err := a.scorer.Rescore(ctx, rescoreWindow); err != nil {
		a.logger.Error("rescoring failed", "error", err)
		a.collector.TickError("algorithm")
		return
	}
	if _, err := a.stats.Tick(ctx); err != nil {
		a.logger.Error("stats aggregation failed", "error", err)
		a.collector.TickError("algorithm")
	}
}
