package engine

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/feedsim/feedsim/internal/models"
	"github.com/feedsim/feedsim/internal/storage"
)

func TestPopulationSeeder_Seed(t *testing.T) {
	store := storage.NewMemStore()
	seeder := NewPopulationSeeder(store, rand.New(rand.NewSource(7)), testLogger(), nil)

	created, err := seeder.Seed(context.Background())
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if created != 247 {
		t.Fatalf("expected 247 bots, got %d", created)
	}

	bots, err := store.ListBots(context.Background())
	if err != nil {
		t.Fatalf("ListBots failed: %v", err)
	}

	counts := map[models.Personality]int{}
	usernames := map[string]bool{}
	for _, bot := range bots {
		counts[bot.Personality]++

		if !bot.IsActive {
			t.Errorf("bot %s seeded inactive", bot.Username)
		}
		if !strings.HasPrefix(bot.Username, "@") {
			t.Errorf("username %q missing @ prefix", bot.Username)
		}
		if usernames[bot.Username] {
			t.Errorf("duplicate username %q", bot.Username)
		}
		usernames[bot.Username] = true

		profile := models.ProfileFor(bot.Personality)
		if bot.FollowersCount < profile.FollowerRange[0] || bot.FollowersCount > profile.FollowerRange[1] {
			t.Errorf("bot %s followers %d outside range %v", bot.Username, bot.FollowersCount, profile.FollowerRange)
		}
		if bot.PostingFrequency != profile.PostingFrequency {
			t.Errorf("bot %s posting frequency %v, want %v", bot.Username, bot.PostingFrequency, profile.PostingFrequency)
		}
		if bot.EngagementRate != profile.EngagementRate {
			t.Errorf("bot %s engagement rate %v, want %v", bot.Username, bot.EngagementRate, profile.EngagementRate)
		}
	}

	want := DefaultSeedCounts()
	for personality, expected := range want {
		if counts[personality] != expected {
			t.Errorf("personality %s: got %d bots, want %d", personality, counts[personality], expected)
		}
	}
}

func TestPopulationSeeder_Idempotent(t *testing.T) {
	store := storage.NewMemStore()
	counts := SeedCounts{models.PersonalityCasual: 3}
	seeder := NewPopulationSeeder(store, rand.New(rand.NewSource(8)), testLogger(), counts)

	if _, err := seeder.Seed(context.Background()); err != nil {
		t.Fatalf("first Seed failed: %v", err)
	}

	created, err := seeder.Seed(context.Background())
	if err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}
	if created != 0 {
		t.Errorf("expected second Seed to be a no-op, created %d bots", created)
	}

	bots, _ := store.ListBots(context.Background())
	if len(bots) != 3 {
		t.Errorf("expected 3 bots after repeated seeding, got %d", len(bots))
	}
}
