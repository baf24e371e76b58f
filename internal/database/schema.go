package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS bots (
		id VARCHAR(36) PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		personality TEXT NOT NULL,
		avatar TEXT NOT NULL,
		followers_count INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		posting_frequency DOUBLE PRECISION NOT NULL DEFAULT 1,
		engagement_rate DOUBLE PRECISION NOT NULL DEFAULT 0.3,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id VARCHAR(36) PRIMARY KEY,
		bot_id VARCHAR(36) NOT NULL REFERENCES bots(id),
		content TEXT NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		hashtags TEXT[] NOT NULL DEFAULT '{}',
		likes_count INTEGER NOT NULL DEFAULT 0,
		comments_count INTEGER NOT NULL DEFAULT 0,
		shares_count INTEGER NOT NULL DEFAULT 0,
		algorithm_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS engagements (
		id VARCHAR(36) PRIMARY KEY,
		post_id VARCHAR(36) NOT NULL REFERENCES posts(id),
		bot_id VARCHAR(36) NOT NULL REFERENCES bots(id),
		type TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS algorithm_config (
		id VARCHAR(36) PRIMARY KEY,
		engagement_weight DOUBLE PRECISION NOT NULL DEFAULT 0.4,
		recency_weight DOUBLE PRECISION NOT NULL DEFAULT 0.3,
		relevance_weight DOUBLE PRECISION NOT NULL DEFAULT 0.3,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS simulation_stats (
		id VARCHAR(36) PRIMARY KEY,
		total_posts INTEGER NOT NULL DEFAULT 0,
		total_engagements INTEGER NOT NULL DEFAULT 0,
		avg_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		active_bots INTEGER NOT NULL DEFAULT 0,
		posts_per_minute INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_score ON posts (algorithm_score DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_engagements_post_id ON engagements (post_id)`,
}

// EnsureSchema creates the feed tables and indexes if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	logger.Info("ensuring database schema")

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}

	logger.Info("database schema ready")
	return nil
}
