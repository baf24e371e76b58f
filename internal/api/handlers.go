package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/feedsim/feedsim/internal/engine"
	"github.com/feedsim/feedsim/internal/models"
	"github.com/feedsim/feedsim/internal/storage"
	"github.com/go-playground/validator/v10"
	"log/slog"
)

const defaultFeedLimit = 20

type Handler struct {
	store      storage.Store
	scorer     *engine.Scorer
	controller *engine.Controller
	logger     *slog.Logger
	validate   *validator.Validate
}

func NewHandler(store storage.Store, scorer *engine.Scorer, controller *engine.Controller, logger *slog.Logger) *Handler {
	return &Handler{
		store:      store,
		scorer:     scorer,
		controller: controller,
		logger:     logger,
		validate:   validator.New(),
	}
}

// GetPostsHandler handles GET /api/posts
func (h *Handler) GetPostsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := defaultFeedLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	posts, err := h.store.ListPosts(r.Context(), limit, offset, storage.OrderByScore)
	if err != nil {
		h.logger.Error("failed to list posts", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	annotated, err := h.annotatePosts(r, posts)
	if err != nil {
		h.logger.Error("failed to annotate posts", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, PostsResponse{
		Posts: annotated,
		Count: len(annotated),
	})
}

// GetBotsHandler handles GET /api/bots
func (h *Handler) GetBotsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	bots, err := h.store.ListBots(r.Context())
	if err != nil {
		h.logger.Error("failed to list bots", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, BotsResponse{
		Bots:  bots,
		Count: len(bots),
	})
}

// UpdateBotHandler handles PATCH /api/bots/:id
func (h *Handler) UpdateBotHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 4 || parts[3] == "" {
		http.Error(w, "Bot ID required", http.StatusBadRequest)
		return
	}
	botID := parts[3]

	var update models.BotUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(update); err != nil {
		http.Error(w, "Invalid bot update: "+err.Error(), http.StatusBadRequest)
		return
	}

	bot, err := h.store.UpdateBot(r.Context(), botID, update)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Bot not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to update bot", "id", botID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("bot updated", "id", botID, "username", bot.Username)
	writeJSON(w, http.StatusOK, bot)
}

// GetStatsHandler handles GET /api/stats
func (h *Handler) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := h.store.GetSimulationStats(r.Context())
	if err != nil {
		h.logger.Error("failed to get stats", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// HandleAlgorithmConfig handles GET and POST /api/algorithm-config
func (h *Handler) HandleAlgorithmConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getAlgorithmConfigHandler(w, r)
	case http.MethodPost:
		h.updateAlgorithmConfigHandler(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) getAlgorithmConfigHandler(w http.ResponseWriter, r *http.Request) {
	config, err := h.store.GetAlgorithmConfig(r.Context())
	if err != nil {
		h.logger.Error("failed to get algorithm config", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, config)
}

func (h *Handler) updateAlgorithmConfigHandler(w http.ResponseWriter, r *http.Request) {
	var request WeightsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(request); err != nil {
		http.Error(w, "Invalid weights: "+err.Error(), http.StatusBadRequest)
		return
	}

	config, err := h.scorer.UpdateWeights(r.Context(), request.EngagementWeight, request.RecencyWeight, request.RelevanceWeight)
	if err != nil {
		h.logger.Error("failed to update weights", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, config)
}

// ControlHandler handles POST /api/simulation/control
func (h *Handler) ControlHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request ControlRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(request); err != nil {
		http.Error(w, "Invalid control request: "+err.Error(), http.StatusBadRequest)
		return
	}

	state, err := h.controller.Control(engine.Action(request.Action), request.Speed)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, ControlResponse{
		Success:         true,
		BotStatus:       state.BotStatus,
		AlgorithmStatus: state.AlgorithmStatus,
	})
}

func (h *Handler) annotatePosts(r *http.Request, posts []models.Post) ([]models.PostWithBot, error) {
	bots, err := h.store.ListBots(r.Context())
	if err != nil {
		return nil, err
	}

	botsByID := make(map[string]*models.Bot, len(bots))
	for i := range bots {
		botsByID[bots[i].ID] = &bots[i]
	}

	annotated := make([]models.PostWithBot, len(posts))
	for i, post := range posts {
		annotated[i] = models.PostWithBot{Post: post, Bot: botsByID[post.BotID]}
	}
	return annotated, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*") // CORS for dev
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// Request and response types
type WeightsRequest struct {
	EngagementWeight float64 `json:"engagement_weight" validate:"gte=0"`
	RecencyWeight    float64 `json:"recency_weight" validate:"gte=0"`
	RelevanceWeight  float64 `json:"relevance_weight" validate:"gte=0"`
}

type ControlRequest struct {
	Action string `json:"action" validate:"required,oneof=start pause reset speed"`
	Speed  *int   `json:"speed,omitempty" validate:"omitempty,gte=1,lte=10"`
}

type ControlResponse struct {
	Success         bool                   `json:"success"`
	BotStatus       engine.SchedulerStatus `json:"botStatus"`
	AlgorithmStatus engine.EngineStatus    `json:"algorithmStatus"`
}

type PostsResponse struct {
	Posts []models.PostWithBot `json:"posts"`
	Count int                  `json:"count"`
}

type BotsResponse struct {
	Bots  []models.Bot `json:"bots"`
	Count int          `json:"count"`
}
