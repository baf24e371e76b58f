package models

import "time"

// Post represents a generated feed entry. Engagement counters only ever
// increase; AlgorithmScore is recomputed periodically and is not
// authoritative between recomputations.
type Post struct {
	ID             string    `json:"id"`
	BotID          string    `json:"bot_id"`
	Content        string    `json:"content"`
	ImageURL       string    `json:"image_url,omitempty"`
	Hashtags       []string  `json:"hashtags"`
	LikesCount     int       `json:"likes_count"`
	CommentsCount  int       `json:"comments_count"`
	SharesCount    int       `json:"shares_count"`
	AlgorithmScore float64   `json:"algorithm_score"`
	CreatedAt      time.Time `json:"created_at"`
}

// TotalEngagements returns the sum of all engagement counters.
func (p *Post) TotalEngagements() int {
	return p.LikesCount + p.CommentsCount + p.SharesCount
}

// PostWithBot is a post annotated with its authoring bot for feed views.
type PostWithBot struct {
	Post
	Bot *Bot `json:"bot,omitempty"`
}

// PostUpdate describes a partial update to a post's mutable fields.
type PostUpdate struct {
	LikesCount     *int     `json:"likes_count,omitempty"`
	CommentsCount  *int     `json:"comments_count,omitempty"`
	SharesCount    *int     `json:"shares_count,omitempty"`
	AlgorithmScore *float64 `json:"algorithm_score,omitempty"`
}
