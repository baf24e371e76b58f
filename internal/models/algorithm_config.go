package models

import "time"

// AlgorithmConfig is the singleton scoring configuration. Weights are
// non-negative and sum to 1, enforced on the update path.
type AlgorithmConfig struct {
	ID               string    `json:"id"`
	EngagementWeight float64   `json:"engagement_weight"`
	RecencyWeight    float64   `json:"recency_weight"`
	RelevanceWeight  float64   `json:"relevance_weight"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DefaultAlgorithmConfig returns the initial weight distribution.
func DefaultAlgorithmConfig() AlgorithmConfig {
	return AlgorithmConfig{
		EngagementWeight: 0.4,
		RecencyWeight:    0.3,
		RelevanceWeight:  0.3,
	}
}

// ConfigUpdate describes a partial update to the algorithm config.
type ConfigUpdate struct {
	EngagementWeight *float64 `json:"engagement_weight,omitempty"`
	RecencyWeight    *float64 `json:"recency_weight,omitempty"`
	RelevanceWeight  *float64 `json:"relevance_weight,omitempty"`
}
