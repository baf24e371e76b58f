package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/feedsim/feedsim/internal/models"
	"github.com/feedsim/feedsim/internal/storage"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresStore implements storage.Store on top of PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ storage.Store = (*PostgresStore)(nil)

const botColumns = "id, username, display_name, personality, avatar, followers_count, is_active, posting_frequency, engagement_rate, created_at"

func scanBot(row interface{ Scan(...any) error }) (*models.Bot, error) {
	var bot models.Bot
	err := row.Scan(
		&bot.ID,
		&bot.Username,
		&bot.DisplayName,
		&bot.Personality,
		&bot.Avatar,
		&bot.FollowersCount,
		&bot.IsActive,
		&bot.PostingFrequency,
		&bot.EngagementRate,
		&bot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bot, nil
}

func (s *PostgresStore) CreateBot(ctx context.Context, bot models.Bot) (*models.Bot, error) {
	bot.ID = uuid.New().String()
	bot.CreatedAt = time.Now()

	query := `
		INSERT INTO bots (id, username, display_name, personality, avatar, followers_count, is_active, posting_frequency, engagement_rate, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query, bot.ID, bot.Username, bot.DisplayName, bot.Personality, bot.Avatar, bot.FollowersCount, bot.IsActive, bot.PostingFrequency, bot.EngagementRate, bot.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return &bot, nil
}

func (s *PostgresStore) ListBots(ctx context.Context) ([]models.Bot, error) {
	query := fmt.Sprintf("SELECT %s FROM bots ORDER BY created_at", botColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bots: %w", err)
	}
	defer rows.Close()

	var bots []models.Bot
	for rows.Next() {
		bot, err := scanBot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bot: %w", err)
		}
		bots = append(bots, *bot)
	}
	return bots, rows.Err()
}

func (s *PostgresStore) GetBot(ctx context.Context, id string) (*models.Bot, error) {
	query := fmt.Sprintf("SELECT %s FROM bots WHERE id = $1", botColumns)

	bot, err := scanBot(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bot: %w", err)
	}
	return bot, nil
}

func (s *PostgresStore) UpdateBot(ctx context.Context, id string, update models.BotUpdate) (*models.Bot, error) {
	sets := []string{}
	args := []any{id}

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.DisplayName != nil {
		appendSet("display_name", *update.DisplayName)
	}
	if update.IsActive != nil {
		appendSet("is_active", *update.IsActive)
	}
	if update.PostingFrequency != nil {
		appendSet("posting_frequency", *update.PostingFrequency)
	}
	if update.EngagementRate != nil {
		appendSet("engagement_rate", *update.EngagementRate)
	}
	if len(sets) == 0 {
		return s.GetBot(ctx, id)
	}

	query := fmt.Sprintf("UPDATE bots SET %s WHERE id = $1", joinSets(sets))
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update bot: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, storage.ErrNotFound
	}
	return s.GetBot(ctx, id)
}

const postColumns = "id, bot_id, content, image_url, hashtags, likes_count, comments_count, shares_count, algorithm_score, created_at"

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID,
		&post.BotID,
		&post.Content,
		&post.ImageURL,
		pq.Array(&post.Hashtags),
		&post.LikesCount,
		&post.CommentsCount,
		&post.SharesCount,
		&post.AlgorithmScore,
		&post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if post.Hashtags == nil {
		post.Hashtags = []string{}
	}
	return &post, nil
}

func (s *PostgresStore) CreatePost(ctx context.Context, post models.Post) (*models.Post, error) {
	post.ID = uuid.New().String()
	post.CreatedAt = time.Now()
	if post.Hashtags == nil {
		post.Hashtags = []string{}
	}

	query := `
		INSERT INTO posts (id, bot_id, content, image_url, hashtags, likes_count, comments_count, shares_count, algorithm_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query, post.ID, post.BotID, post.Content, post.ImageURL, pq.Array(post.Hashtags), post.LikesCount, post.CommentsCount, post.SharesCount, post.AlgorithmScore, post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return &post, nil
}

func (s *PostgresStore) ListPosts(ctx context.Context, limit, offset int, order storage.PostOrder) ([]models.Post, error) {
	orderBy := "algorithm_score DESC, created_at DESC"
	if order == storage.OrderByCreated {
		orderBy = "created_at DESC"
	}

	query := fmt.Sprintf("SELECT %s FROM posts ORDER BY %s OFFSET $1", postColumns, orderBy)
	args := []any{offset}
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func (s *PostgresStore) GetPost(ctx context.Context, id string) (*models.Post, error) {
	query := fmt.Sprintf("SELECT %s FROM posts WHERE id = $1", postColumns)

	post, err := scanPost(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

func (s *PostgresStore) UpdatePost(ctx context.Context, id string, update models.PostUpdate) (*models.Post, error) {
	sets := []string{}
	args := []any{id}

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.LikesCount != nil {
		appendSet("likes_count", *update.LikesCount)
	}
	if update.CommentsCount != nil {
		appendSet("comments_count", *update.CommentsCount)
	}
	if update.SharesCount != nil {
		appendSet("shares_count", *update.SharesCount)
	}
	if update.AlgorithmScore != nil {
		appendSet("algorithm_score", *update.AlgorithmScore)
	}
	if len(sets) == 0 {
		return s.GetPost(ctx, id)
	}

	query := fmt.Sprintf("UPDATE posts SET %s WHERE id = $1", joinSets(sets))
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, storage.ErrNotFound
	}
	return s.GetPost(ctx, id)
}

func (s *PostgresStore) ListPostsByBot(ctx context.Context, botID string) ([]models.Post, error) {
	query := fmt.Sprintf("SELECT %s FROM posts WHERE bot_id = $1 ORDER BY created_at DESC", postColumns)

	rows, err := s.db.QueryContext(ctx, query, botID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by bot: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func (s *PostgresStore) CreateEngagement(ctx context.Context, engagement models.Engagement) (*models.Engagement, error) {
	engagement.ID = uuid.New().String()
	engagement.CreatedAt = time.Now()

	query := `
		INSERT INTO engagements (id, post_id, bot_id, type, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query, engagement.ID, engagement.PostID, engagement.BotID, engagement.Type, engagement.Content, engagement.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create engagement: %w", err)
	}
	return &engagement, nil
}

func (s *PostgresStore) ListEngagements(ctx context.Context) ([]models.Engagement, error) {
	return s.listEngagements(ctx, "SELECT id, post_id, bot_id, type, content, created_at FROM engagements ORDER BY created_at")
}

func (s *PostgresStore) ListEngagementsByPost(ctx context.Context, postID string) ([]models.Engagement, error) {
	return s.listEngagements(ctx, "SELECT id, post_id, bot_id, type, content, created_at FROM engagements WHERE post_id = $1 ORDER BY created_at", postID)
}

func (s *PostgresStore) listEngagements(ctx context.Context, query string, args ...any) ([]models.Engagement, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list engagements: %w", err)
	}
	defer rows.Close()

	var engagements []models.Engagement
	for rows.Next() {
		var engagement models.Engagement
		err := rows.Scan(
			&engagement.ID,
			&engagement.PostID,
			&engagement.BotID,
			&engagement.Type,
			&engagement.Content,
			&engagement.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan engagement: %w", err)
		}
		engagements = append(engagements, engagement)
	}
	return engagements, rows.Err()
}

func (s *PostgresStore) GetAlgorithmConfig(ctx context.Context) (*models.AlgorithmConfig, error) {
	query := "SELECT id, engagement_weight, recency_weight, relevance_weight, updated_at FROM algorithm_config LIMIT 1"

	var config models.AlgorithmConfig
	err := s.db.QueryRowContext(ctx, query).Scan(
		&config.ID,
		&config.EngagementWeight,
		&config.RecencyWeight,
		&config.RelevanceWeight,
		&config.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return s.insertDefaultConfig(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get algorithm config: %w", err)
	}
	return &config, nil
}

func (s *PostgresStore) insertDefaultConfig(ctx context.Context) (*models.AlgorithmConfig, error) {
	config := models.DefaultAlgorithmConfig()
	config.ID = uuid.New().String()
	config.UpdatedAt = time.Now()

	query := `
		INSERT INTO algorithm_config (id, engagement_weight, recency_weight, relevance_weight, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query, config.ID, config.EngagementWeight, config.RecencyWeight, config.RelevanceWeight, config.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert default algorithm config: %w", err)
	}
	return &config, nil
}

func (s *PostgresStore) UpdateAlgorithmConfig(ctx context.Context, update models.ConfigUpdate) (*models.AlgorithmConfig, error) {
	config, err := s.GetAlgorithmConfig(ctx)
	if err != nil {
		return nil, err
	}

	if update.EngagementWeight != nil {
		config.EngagementWeight = *update.EngagementWeight
	}
	if update.RecencyWeight != nil {
		config.RecencyWeight = *update.RecencyWeight
	}
	if update.RelevanceWeight != nil {
		config.RelevanceWeight = *update.RelevanceWeight
	}
	config.UpdatedAt = time.Now()

	query := `
		UPDATE algorithm_config
		SET engagement_weight = $2, recency_weight = $3, relevance_weight = $4, updated_at = $5
		WHERE id = $1
	`
	_, err = s.db.ExecContext(ctx, query, config.ID, config.EngagementWeight, config.RecencyWeight, config.RelevanceWeight, config.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update algorithm config: %w", err)
	}
	return config, nil
}

func (s *PostgresStore) GetSimulationStats(ctx context.Context) (*models.SimulationStats, error) {
	query := "SELECT id, total_posts, total_engagements, avg_score, active_bots, posts_per_minute, updated_at FROM simulation_stats LIMIT 1"

	var stats models.SimulationStats
	err := s.db.QueryRowContext(ctx, query).Scan(
		&stats.ID,
		&stats.TotalPosts,
		&stats.TotalEngagements,
		&stats.AvgScore,
		&stats.ActiveBots,
		&stats.PostsPerMinute,
		&stats.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return s.insertDefaultStats(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get simulation stats: %w", err)
	}
	return &stats, nil
}

func (s *PostgresStore) insertDefaultStats(ctx context.Context) (*models.SimulationStats, error) {
	stats := models.SimulationStats{
		ID:        uuid.New().String(),
		UpdatedAt: time.Now(),
	}

	query := `
		INSERT INTO simulation_stats (id, total_posts, total_engagements, avg_score, active_bots, posts_per_minute, updated_at)
		VALUES ($1, 0, 0, 0, 0, 0, $2)
	`
	if _, err := s.db.ExecContext(ctx, query, stats.ID, stats.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert default simulation stats: %w", err)
	}
	return &stats, nil
}

func (s *PostgresStore) UpdateSimulationStats(ctx context.Context, update models.StatsUpdate) (*models.SimulationStats, error) {
	stats, err := s.GetSimulationStats(ctx)
	if err != nil {
		return nil, err
	}

	if update.TotalPosts != nil {
		stats.TotalPosts = *update.TotalPosts
	}
	if update.TotalEngagements != nil {
		stats.TotalEngagements = *update.TotalEngagements
	}
	if update.AvgScore != nil {
		stats.AvgScore = *update.AvgScore
	}
	if update.ActiveBots != nil {
		stats.ActiveBots = *update.ActiveBots
	}
	if update.PostsPerMinute != nil {
		stats.PostsPerMinute = *update.PostsPerMinute
	}
	stats.UpdatedAt = time.Now()

	query := `
		UPDATE simulation_stats
		SET total_posts = $2, total_engagements = $3, avg_score = $4, active_bots = $5, posts_per_minute = $6, updated_at = $7
		WHERE id = $1
	`
	_, err = s.db.ExecContext(ctx, query, stats.ID, stats.TotalPosts, stats.TotalEngagements, stats.AvgScore, stats.ActiveBots, stats.PostsPerMinute, stats.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update simulation stats: %w", err)
	}
	return stats, nil
}

func joinSets(sets []string) string {
	out := sets[0]
	for _, set := range sets[1:] {
		out += ", " + set
	}
	return out
}
