package models

import "time"

// Bot represents a synthetic account participating in the simulated feed.
type Bot struct {
	ID               string      `json:"id"`
	Username         string      `json:"username"`
	DisplayName      string      `json:"display_name"`
	Personality      Personality `json:"personality"`
	Avatar           string      `json:"avatar"` // CSS gradient descriptor, cosmetic only
	FollowersCount   int         `json:"followers_count"`
	IsActive         bool        `json:"is_active"`
	PostingFrequency float64     `json:"posting_frequency"` // relative weight, nominal [0.5,12]
	EngagementRate   float64     `json:"engagement_rate"`   // probability multiplier in [0,1]
	CreatedAt        time.Time   `json:"created_at"`
}

// BotUpdate describes a partial update to a bot's mutable fields. Nil fields
// are left unchanged.
type BotUpdate struct {
	DisplayName      *string  `json:"display_name,omitempty"`
	IsActive         *bool    `json:"is_active,omitempty"`
	PostingFrequency *float64 `json:"posting_frequency,omitempty" validate:"omitempty,gte=0"`
	EngagementRate   *float64 `json:"engagement_rate,omitempty" validate:"omitempty,gte=0,lte=1"`
}
