// Package network - api.go
// NewsroomAPI - REST command surface for the front-of-house client.
//
// The websocket pushes state; commands come in here. Every handler takes
// the request, runs exactly one Store command, and answers with the
// resulting state slice so the client never has to poll after a command.
package network

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/domain/article"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/engine"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/infra/content"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/infra/storage"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/platform/logger"
)

// NewsroomAPI handles the player-facing HTTP commands.
type NewsroomAPI struct {
	store    *engine.Store
	loop     *engine.Loop
	recapper *storage.Recapper
	content  *content.Client
	logger   *logger.Logger

	// onReset clears the persisted copy of the game alongside the
	// in-memory state. Wired by main; nil in tests.
	onReset func()
}

// NewNewsroomAPI creates the REST command handler.
func NewNewsroomAPI(store *engine.Store, loop *engine.Loop, recapper *storage.Recapper, cc *content.Client, log *logger.Logger) *NewsroomAPI {
	return &NewsroomAPI{
		store:    store,
		loop:     loop,
		recapper: recapper,
		content:  cc,
		logger:   log,
	}
}

// SetResetHook registers the callback invoked after a reset command.
func (api *NewsroomAPI) SetResetHook(fn func()) {
	api.onReset = fn
}

// AdvanceRequest is the payload for a manual time advance.
type AdvanceRequest struct {
	Ticks int64 `json:"ticks"`
}

// CommitRequest is the payload for committing a drafted article.
type CommitRequest struct {
	Draft article.Draft `json:"draft"`
}

// SpeedRequest is the payload for changing the clock speed.
type SpeedRequest struct {
	Speed int64 `json:"speed"`
}

// PauseRequest is the payload for pausing or resuming the clock.
type PauseRequest struct {
	Paused bool `json:"paused"`
}

// PublicationRequest is the payload for renaming the outlet.
type PublicationRequest struct {
	Name string `json:"name"`
}

// HandleState returns the full current game state.
// GET /api/state
func (api *NewsroomAPI) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	api.jsonSuccess(w, api.stateView())
}

// HandleAdvance moves the simulation forward by a number of ticks.
// POST /api/advance
func (api *NewsroomAPI) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Ticks <= 0 {
		api.jsonError(w, "ticks must be positive", http.StatusBadRequest)
		return
	}

	api.store.Advance(req.Ticks)
	api.jsonSuccess(w, api.stateView())
}

// HandleHire adds a writer to the roster.
// POST /api/hire
func (api *NewsroomAPI) HandleHire(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	hire, ok := api.store.HireStaff()
	if !ok {
		api.jsonError(w, "Insufficient cash to hire", http.StatusConflict)
		return
	}

	api.logger.Event("STAFF_HIRED", "PLAYER", "Name:"+hire.Name)
	api.jsonSuccess(w, map[string]interface{}{
		"hired": hire,
		"state": api.stateView(),
	})
}

// HandleCommit turns a draft into a pending article.
// POST /api/articles/commit
func (api *NewsroomAPI) HandleCommit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Draft.Topic == "" {
		api.jsonError(w, "Missing draft topic", http.StatusBadRequest)
		return
	}

	committed, err := api.store.CommitDraft(req.Draft)
	if err != nil {
		api.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	api.logger.Event("ARTICLE_COMMITTED", "PLAYER", "Topic:"+committed.Topic)
	api.jsonSuccess(w, map[string]interface{}{
		"article": committed,
		"state":   api.stateView(),
	})
}

// HandleReset returns the game to the initial state and clears the
// persisted copy.
// POST /api/reset
func (api *NewsroomAPI) HandleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	api.store.Reset()
	if api.onReset != nil {
		api.onReset()
	}

	api.logger.Event("SIM_RESET", "PLAYER", "Full reset")
	api.jsonSuccess(w, api.stateView())
}

// HandleSpeed changes the tick multiplier of the live clock.
// POST /api/speed
func (api *NewsroomAPI) HandleSpeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SpeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	api.loop.SetSpeed(req.Speed)
	api.jsonSuccess(w, map[string]interface{}{
		"speed": api.loop.Speed(),
	})
}

// HandlePause pauses or resumes the live clock.
// POST /api/pause
func (api *NewsroomAPI) HandlePause(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PauseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	api.loop.SetPaused(req.Paused)
	api.jsonSuccess(w, map[string]interface{}{
		"paused": api.loop.Paused(),
	})
}

// HandlePublication renames the outlet.
// POST /api/publication
func (api *NewsroomAPI) HandlePublication(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PublicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		api.jsonError(w, "Missing publication name", http.StatusBadRequest)
		return
	}

	api.store.SetPublicationName(req.Name)
	api.jsonSuccess(w, api.stateView())
}

// HandleRateHeadline proxies a headline through the content service
// rater. Cosmetic: the verdict never feeds back into the simulation.
// POST /api/headlines/rate
func (api *NewsroomAPI) HandleRateHeadline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if api.content == nil {
		api.jsonError(w, "Content service not configured", http.StatusServiceUnavailable)
		return
	}

	var req content.HeadlineRateIn
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Headline == "" {
		api.jsonError(w, "Missing headline", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	out, err := api.content.RateHeadline(ctx, req.Headline, req.ArticleType)
	if err != nil {
		api.logger.Warn("Headline rating failed: %v", err)
		api.jsonError(w, "Headline rating unavailable", http.StatusBadGateway)
		return
	}
	api.jsonSuccess(w, out)
}

// HandleRecap returns a human-readable summary of recent persisted
// events, for the "previously on" panel after a reload.
// GET /api/recap?n=20
func (api *NewsroomAPI) HandleRecap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if api.recapper == nil {
		api.jsonError(w, "Persistence not configured", http.StatusServiceUnavailable)
		return
	}

	n := 20
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			api.jsonError(w, "Invalid n", http.StatusBadRequest)
			return
		}
		n = parsed
	}

	entries, err := api.recapper.Recap(r.Context(), storage.DefaultGameID, n)
	if err != nil {
		api.logger.Error("Recap query failed: %v", err)
		api.jsonError(w, "Recap unavailable", http.StatusInternalServerError)
		return
	}
	api.jsonSuccess(w, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// RegisterRoutes sets up the newsroom API routes.
func (api *NewsroomAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/state", api.HandleState)
	mux.HandleFunc("/api/advance", api.HandleAdvance)
	mux.HandleFunc("/api/hire", api.HandleHire)
	mux.HandleFunc("/api/articles/commit", api.HandleCommit)
	mux.HandleFunc("/api/reset", api.HandleReset)
	mux.HandleFunc("/api/speed", api.HandleSpeed)
	mux.HandleFunc("/api/pause", api.HandlePause)
	mux.HandleFunc("/api/publication", api.HandlePublication)
	mux.HandleFunc("/api/headlines/rate", api.HandleRateHeadline)
	mux.HandleFunc("/api/recap", api.HandleRecap)
}

// stateView assembles the client-facing state document.
func (api *NewsroomAPI) stateView() map[string]interface{} {
	snap := api.store.Snapshot()
	return map[string]interface{}{
		"publication_name": snap.PublicationName,
		"tick":             snap.Tick,
		"date":             engine.FormatDate(snap.Tick),
		"cash":             snap.Cash,
		"subscribers":      snap.Subscribers,
		"staff":            snap.Staff,
		"articles":         snap.Articles,
		"pending":          api.store.PendingArticles(),
		"monthly_cost":     api.store.MonthlyCost(),
		"monthly_revenue":  api.store.MonthlyRevenue(),
		"published_views":  api.store.TotalPublishedViews(),
		"timestamp":        time.Now().Unix(),
	}
}

// jsonError sends an error response.
func (api *NewsroomAPI) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// jsonSuccess sends a success response.
func (api *NewsroomAPI) jsonSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(data)
}
