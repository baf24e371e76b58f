package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/feedsim/feedsim/internal/models"
	"github.com/google/uuid"
)

// MemStore is an in-memory Store implementation. It backs the DB-less demo
// mode and the engine tests. All operations are safe for concurrent use.
type MemStore struct {
	mu          sync.RWMutex
	bots        map[string]models.Bot
	posts       map[string]models.Post
	engagements []models.Engagement
	config      models.AlgorithmConfig
	stats       models.SimulationStats
}

// NewMemStore constructs an empty MemStore with default singleton records.
func NewMemStore() *MemStore {
	config := models.DefaultAlgorithmConfig()
	config.ID = uuid.New().String()
	config.UpdatedAt = time.Now()

	return &MemStore{
		bots:   make(map[string]models.Bot),
		posts:  make(map[string]models.Post),
		config: config,
		stats: models.SimulationStats{
			ID:        uuid.New().String(),
			UpdatedAt: time.Now(),
		},
	}
}

func (s *MemStore) CreateBot(ctx context.Context, bot models.Bot) (*models.Bot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bot.ID = uuid.New().String()
	bot.CreatedAt = time.Now()
	s.bots[bot.ID] = bot
	return &bot, nil
}

func (s *MemStore) ListBots(ctx context.Context) ([]models.Bot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bots := make([]models.Bot, 0, len(s.bots))
	for _, bot := range s.bots {
		bots = append(bots, bot)
	}
	sort.Slice(bots, func(i, j int) bool {
		return bots[i].CreatedAt.Before(bots[j].CreatedAt)
	})
	return bots, nil
}

func (s *MemStore) GetBot(ctx context.Context, id string) (*models.Bot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bot, ok := s.bots[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &bot, nil
}

func (s *MemStore) UpdateBot(ctx context.Context, id string, update models.BotUpdate) (*models.Bot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bot, ok := s.bots[id]
	if !ok {
		return nil, ErrNotFound
	}
	if update.DisplayName != nil {
		bot.DisplayName = *update.DisplayName
	}
	if update.IsActive != nil {
		bot.IsActive = *update.IsActive
	}
	if update.PostingFrequency != nil {
		bot.PostingFrequency = *update.PostingFrequency
	}
	if update.EngagementRate != nil {
		bot.EngagementRate = *update.EngagementRate
	}
	s.bots[id] = bot
	return &bot, nil
}

func (s *MemStore) CreatePost(ctx context.Context, post models.Post) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = uuid.New().String()
	post.CreatedAt = time.Now()
	if post.Hashtags == nil {
		post.Hashtags = []string{}
	}
	s.posts[post.ID] = post
	return &post, nil
}

func (s *MemStore) ListPosts(ctx context.Context, limit, offset int, order PostOrder) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		posts = append(posts, post)
	}

	switch order {
	case OrderByCreated:
		sort.Slice(posts, func(i, j int) bool {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
	default:
		sort.Slice(posts, func(i, j int) bool {
			return posts[i].AlgorithmScore > posts[j].AlgorithmScore
		})
	}

	if offset >= len(posts) {
		return []models.Post{}, nil
	}
	posts = posts[offset:]
	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}
	return posts, nil
}

func (s *MemStore) GetPost(ctx context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &post, nil
}

func (s *MemStore) UpdatePost(ctx context.Context, id string, update models.PostUpdate) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if update.LikesCount != nil {
		post.LikesCount = *update.LikesCount
	}
	if update.CommentsCount != nil {
		post.CommentsCount = *update.CommentsCount
	}
	if update.SharesCount != nil {
		post.SharesCount = *update.SharesCount
	}
	if update.AlgorithmScore != nil {
		post.AlgorithmScore = *update.AlgorithmScore
	}
	s.posts[id] = post
	return &post, nil
}

func (s *MemStore) ListPostsByBot(ctx context.Context, botID string) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var posts []models.Post
	for _, post := range s.posts {
		if post.BotID == botID {
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (s *MemStore) CreateEngagement(ctx context.Context, engagement models.Engagement) (*models.Engagement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	engagement.ID = uuid.New().String()
	engagement.CreatedAt = time.Now()
	s.engagements = append(s.engagements, engagement)
	return &engagement, nil
}

func (s *MemStore) ListEngagements(ctx context.Context) ([]models.Engagement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	engagements := make([]models.Engagement, len(s.engagements))
	copy(engagements, s.engagements)
	return engagements, nil
}

func (s *MemStore) ListEngagementsByPost(ctx context.Context, postID string) ([]models.Engagement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var engagements []models.Engagement
	for _, engagement := range s.engagements {
		if engagement.PostID == postID {
			engagements = append(engagements, engagement)
		}
	}
	return engagements, nil
}

func (s *MemStore) GetAlgorithmConfig(ctx context.Context) (*models.AlgorithmConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	config := s.config
	return &config, nil
}

func (s *MemStore) UpdateAlgorithmConfig(ctx context.Context, update models.ConfigUpdate) (*models.AlgorithmConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if update.EngagementWeight != nil {
		s.config.EngagementWeight = *update.EngagementWeight
	}
	if update.RecencyWeight != nil {
		s.config.RecencyWeight = *update.RecencyWeight
	}
	if update.RelevanceWeight != nil {
		s.config.RelevanceWeight = *update.RelevanceWeight
	}
	s.config.UpdatedAt = time.Now()

	config := s.config
	return &config, nil
}

func (s *MemStore) GetSimulationStats(ctx context.Context) (*models.SimulationStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := s.stats
	return &stats, nil
}

func (s *MemStore) UpdateSimulationStats(ctx context.Context, update models.StatsUpdate) (*models.SimulationStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if update.TotalPosts != nil {
		s.stats.TotalPosts = *update.TotalPosts
	}
	if update.TotalEngagements != nil {
		s.stats.TotalEngagements = *update.TotalEngagements
	}
	if update.AvgScore != nil {
		s.stats.AvgScore = *update.AvgScore
	}
	if update.ActiveBots != nil {
		s.stats.ActiveBots = *update.ActiveBots
	}
	if update.PostsPerMinute != nil {
		s.stats.PostsPerMinute = *update.PostsPerMinute
	}
	s.stats.UpdatedAt = time.Now()

	stats := s.stats
	return &stats, nil
}
