package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/feedsim/feedsim/internal/models"
	"github.com/feedsim/feedsim/internal/storage"
)

// SeedCounts maps each personality to the number of bots created at first
// startup.
type SeedCounts map[models.Personality]int

// DefaultSeedCounts is the default archetype distribution.
func DefaultSeedCounts() SeedCounts {
	return SeedCounts{
		models.PersonalityCasual:     156,
		models.PersonalityInfluencer: 23,
		models.PersonalityPowerUser:  41,
		models.PersonalityLurker:     27,
	}
}

// seedOrder fixes the iteration order over personalities.
var seedOrder = []models.Personality{
	models.PersonalityCasual,
	models.PersonalityInfluencer,
	models.PersonalityPowerUser,
	models.PersonalityLurker,
}

var usernameSuffixes = []string{"Lover", "Enthusiast", "Guru", "Pro", "Expert", "Fan", "Addict", "Bot", "AI"}

var displayNames = []string{"Alex", "Sam", "Jordan", "Casey", "Riley", "Taylor", "Morgan", "Avery", "Quinn", "Blake"}

// PopulationSeeder creates the initial bot population. Seeding is idempotent:
// if any bots already exist the seeder is a no-op.
type PopulationSeeder struct {
	store  storage.Store
	rng    *rand.Rand
	logger *slog.Logger
	counts SeedCounts
}

// NewPopulationSeeder creates a seeder with the given archetype counts.
func NewPopulationSeeder(store storage.Store, rng *rand.Rand, logger *slog.Logger, counts SeedCounts) *PopulationSeeder {
	if counts == nil {
		counts = DefaultSeedCounts()
	}
	return &PopulationSeeder{
		store:  store,
		rng:    rng,
		logger: logger,
		counts: counts,
	}
}

// Seed populates the store with the configured archetype distribution if no
// bots exist yet. It returns the number of bots created.
func (s *PopulationSeeder) Seed(ctx context.Context) (int, error) {
	existing, err := s.store.ListBots(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing bots: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("bot population already seeded", "bots", len(existing))
		return 0, nil
	}

	created := 0
	for _, personality := range seedOrder {
		profile := models.ProfileFor(personality)
		for i := 0; i < s.counts[personality]; i++ {
			bot := models.Bot{
				Username:         s.username(profile, i+1),
				DisplayName:      displayNames[s.rng.Intn(len(displayNames))],
				Personality:      personality,
				Avatar:           fmt.Sprintf("linear-gradient(135deg, %s, %s)", profile.AvatarColors[0], profile.AvatarColors[1]),
				FollowersCount:   s.followers(profile),
				IsActive:         true,
				PostingFrequency: profile.PostingFrequency,
				EngagementRate:   profile.EngagementRate,
			}
			if _, err := s.store.CreateBot(ctx, bot); err != nil {
				return created, fmt.Errorf("failed to seed bot %s: %w", bot.Username, err)
			}
			created++
		}
	}

	s.logger.Info("seeded bot population", "bots", created)
	return created, nil
}

// username synthesizes a unique handle: random prefix+suffix from the
// archetype pools plus a per-archetype sequence number.
func (s *PopulationSeeder) username(profile models.PersonalityProfile, seq int) string {
	prefix := profile.NamePrefixes[s.rng.Intn(len(profile.NamePrefixes))]
	suffix := usernameSuffixes[s.rng.Intn(len(usernameSuffixes))]
	return fmt.Sprintf("@%s%s_%d", prefix, suffix, seq)
}

func (s *PopulationSeeder) followers(profile models.PersonalityProfile) int {
	min, max := profile.FollowerRange[0], profile.FollowerRange[1]
	return min + s.rng.Intn(max-min+1)
}
