package models

import "time"

// SimulationStats is the singleton record of derived feed counters,
// overwritten wholesale on every aggregation tick.
type SimulationStats struct {
	ID               string    `json:"id"`
	TotalPosts       int       `json:"total_posts"`
	TotalEngagements int       `json:"total_engagements"`
	AvgScore         float64   `json:"avg_score"`
	ActiveBots       int       `json:"active_bots"`
	PostsPerMinute   int       `json:"posts_per_minute"` // posts created in the last 60s
	UpdatedAt        time.Time `json:"updated_at"`
}

// StatsUpdate describes a partial update to the stats record.
type StatsUpdate struct {
	TotalPosts       *int     `json:"total_posts,omitempty"`
	TotalEngagements *int     `json:"total_engagements,omitempty"`
	AvgScore         *float64 `json:"avg_score,omitempty"`
	ActiveBots       *int     `json:"active_bots,omitempty"`
	PostsPerMinute   *int     `json:"posts_per_minute,omitempty"`
}
