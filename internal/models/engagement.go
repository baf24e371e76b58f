package models

import "time"

// EngagementType categorizes an engagement event.
type EngagementType string

const (
	EngagementLike    EngagementType = "like"
	EngagementComment EngagementType = "comment"
	EngagementShare   EngagementType = "share"
)

// Engagement records a single like/comment/share by a bot against a post.
// Engagements are append-only and never updated or deleted.
type Engagement struct {
	ID        string         `json:"id"`
	PostID    string         `json:"post_id"`
	BotID     string         `json:"bot_id"`
	Type      EngagementType `json:"type"`
	Content   string         `json:"content,omitempty"` // comment text, only for comments
	CreatedAt time.Time      `json:"created_at"`
}
