package engine

import (
	"fmt"
	"log/slog"
)

// Action is an operator control command for the simulation.
type Action string

const (
	ActionStart Action = "start"
	ActionPause Action = "pause"
	ActionReset Action = "reset"
	ActionSpeed Action = "speed"
)

// RunState reports the run state of both simulation processes.
type RunState struct {
	BotStatus       SchedulerStatus `json:"botStatus"`
	AlgorithmStatus EngineStatus    `json:"algorithmStatus"`
}

// Controller is the composition root for the two periodic processes: the
// posting scheduler and the algorithm engine.
type Controller struct {
	poster    *PostingScheduler
	algorithm *AlgorithmEngine
	logger    *slog.Logger
}

// NewController wires the posting scheduler and algorithm engine behind one
// control surface.
func NewController(poster *PostingScheduler, algorithm *AlgorithmEngine, logger *slog.Logger) *Controller {
	return &Controller{
		poster:    poster,
		algorithm: algorithm,
		logger:    logger,
	}
}

// Control applies an operator action and returns the resulting run state.
// reset pauses both processes without clearing any persisted data; speed
// adjusts only the posting scheduler's cadence.
func (c *Controller) Control(action Action, speed *int) (RunState, error) {
	switch action {
	case ActionStart:
		c.poster.Start()
		c.algorithm.Start()
	case ActionPause:
		c.poster.Pause()
		c.algorithm.Pause()
	case ActionReset:
		c.poster.Pause()
		c.algorithm.Pause()
	case ActionSpeed:
		if speed == nil {
			return c.State(), fmt.Errorf("speed action requires a speed value")
		}
		c.poster.SetSpeed(*speed)
	default:
		return c.State(), fmt.Errorf("unknown action %q", action)
	}

	c.logger.Info("simulation control applied", "action", action)
	return c.State(), nil
}

// State returns the current run state of both processes.
func (c *Controller) State() RunState {
	return RunState{
		BotStatus:       c.poster.Status(),
		AlgorithmStatus: c.algorithm.Status(),
	}
}

// Poster exposes the posting scheduler, mainly for status reporting.
func (c *Controller) Poster() *PostingScheduler {
	return c.poster
}

// Algorithm exposes the algorithm engine, mainly for status reporting.
func (c *Controller) Algorithm() *AlgorithmEngine {
	return c.algorithm
}
