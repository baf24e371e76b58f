package engine

import (
	"context"
	"math/rand"
	"testing"

	"github.com/feedsim/feedsim/internal/models"
	"github.com/feedsim/feedsim/internal/storage"
)

func newTestController(store storage.Store) *Controller {
	rng := rand.New(rand.NewSource(12))
	logger := testLogger()

	poster := NewPostingScheduler(store, NewContentGenerator(rng), rng, logger, nil, 5)
	algorithm := NewAlgorithmEngine(
		NewEngagementSimulator(store, rng, logger, nil),
		NewScorer(store, logger),
		NewStatsAggregator(store, logger),
		logger,
		nil,
	)
	return NewController(poster, algorithm, logger)
}

func TestController_StartPause(t *testing.T) {
	controller := newTestController(storage.NewMemStore())
	defer controller.Control(ActionPause, nil)

	state := controller.State()
	if state.BotStatus.IsRunning || state.AlgorithmStatus.IsRunning {
		t.Fatal("both processes should start paused")
	}

	state, err := controller.Control(ActionStart, nil)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if !state.BotStatus.IsRunning || !state.AlgorithmStatus.IsRunning {
		t.Fatalf("expected both processes running, got %+v", state)
	}

	state, err = controller.Control(ActionPause, nil)
	if err != nil {
		t.Fatalf("pause failed: %v", err)
	}
	if state.BotStatus.IsRunning || state.AlgorithmStatus.IsRunning {
		t.Fatalf("expected both processes paused, got %+v", state)
	}
}

func TestController_ResetPausesWithoutClearingData(t *testing.T) {
	store := storage.NewMemStore()
	ctx := context.Background()

	bot, err := store.CreateBot(ctx, models.Bot{Username: "@CoffeeFan_1", IsActive: true})
	if err != nil {
		t.Fatalf("CreateBot failed: %v", err)
	}
	if _, err := store.CreatePost(ctx, models.Post{BotID: bot.ID, Content: "kept"}); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	controller := newTestController(store)
	defer controller.Control(ActionPause, nil)

	if _, err := controller.Control(ActionStart, nil); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	state, err := controller.Control(ActionReset, nil)
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if state.BotStatus.IsRunning || state.AlgorithmStatus.IsRunning {
		t.Fatalf("expected reset to pause both processes, got %+v", state)
	}

	bots, _ := store.ListBots(ctx)
	posts, _ := store.ListPosts(ctx, 0, 0, storage.OrderByCreated)
	if len(bots) != 1 || len(posts) != 1 {
		t.Errorf("reset must not clear data: %d bots, %d posts", len(bots), len(posts))
	}
}

func TestController_SpeedAction(t *testing.T) {
	controller := newTestController(storage.NewMemStore())
	defer controller.Control(ActionPause, nil)

	speed := 8
	state, err := controller.Control(ActionSpeed, &speed)
	if err != nil {
		t.Fatalf("speed action failed: %v", err)
	}
	if state.BotStatus.Speed != 8 {
		t.Errorf("expected speed 8, got %d", state.BotStatus.Speed)
	}
	if state.BotStatus.IsRunning {
		t.Error("speed change must not start a paused scheduler")
	}

	if _, err := controller.Control(ActionSpeed, nil); err == nil {
		t.Error("expected error for speed action without a value")
	}
}

func TestController_UnknownAction(t *testing.T) {
	controller := newTestController(storage.NewMemStore())

	if _, err := controller.Control(Action("explode"), nil); err == nil {
		t.Error("expected error for unknown action")
	}
}
