// Package main is the entry point for the Rat News Network game server.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/engine"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/events"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/infra/cache"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/infra/content"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/infra/storage"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/network"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/platform/config"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/platform/logger"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/platform/metrics"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/sim"
)

// SQLitePersisterAdapter translates domain events to storage events.
type SQLitePersisterAdapter struct {
	repo *storage.SQLiteEventRepository
}

func (a *SQLitePersisterAdapter) Append(event events.Event) error {
	payloadBytes, _ := json.Marshal(event.Payload)
	var payloadMap map[string]interface{}
	json.Unmarshal(payloadBytes, &payloadMap)

	storageEvent := storage.NewsEvent{
		ID:        event.ID,
		GameID:    storage.DefaultGameID,
		Timestamp: event.Timestamp,
		EventType: string(event.Type),
		ActorID:   event.ActorID,
		TargetID:  event.TargetID,
		Payload:   payloadMap,
		Tick:      event.Tick,
	}
	start := time.Now()
	err := a.repo.Append(context.Background(), storageEvent)
	metrics.Get().RecordEventWrite(time.Since(start), err)
	return err
}

// restoreSavedGame loads the persisted snapshot into the store, if one
// exists. A fresh database leaves the store at the initial state.
func restoreSavedGame(ctx context.Context, repo *storage.SQLiteSnapshotRepository, store *engine.Store, appLogger *logger.Logger) {
	saved, err := repo.Load(ctx, storage.DefaultGameID)
	if err != nil {
		appLogger.Error("Failed to load saved game: %v", err)
		return
	}
	if saved == nil {
		appLogger.Info("No saved game found. Starting a fresh newsroom.")
		return
	}

	snap, err := storage.DecodeSnapshot(*saved)
	if err != nil {
		appLogger.Error("Failed to decode saved game, starting fresh: %v", err)
		return
	}
	store.Restore(snap)
	appLogger.Info("Restored newsroom from SQLite: tick %d, %d articles", snap.Tick, len(snap.Articles))
}

func main() {
	log.Println("[NEWSROOM] Initializing 'Rat News Network' Authoritative Server...")

	// .env is a dev convenience; absence is normal in production.
	_ = godotenv.Load()

	appLogger := logger.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		appLogger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	tuning, err := config.LoadTuning(cfg.TuningPath)
	if err != nil {
		appLogger.Warn("Tuning file problem, using defaults: %v", err)
	}

	appLogger.Info("Initializing SQLite database %q...", cfg.DBPath)
	db, err := storage.InitSQLite(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to initialize SQLite: %v", err)
		os.Exit(1)
	}
	eventRepo := storage.NewSQLiteEventRepository(db)
	eventPersister := &SQLitePersisterAdapter{repo: eventRepo}

	appLogger.Info("Bootstrapping EventLog...")
	eventLog := events.NewLog(eventPersister)

	appLogger.Info("Bootstrapping Simulation Store...")
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	clock := engine.NewClock(tuning, rng)
	lifecycle := sim.NewLifecycle(sim.NewProjector(tuning, rng))
	store := engine.NewStore(tuning, clock, lifecycle, eventLog, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapRepo := storage.NewSQLiteSnapshotRepository(db)
	restoreSavedGame(ctx, snapRepo, store, appLogger)

	appLogger.Info("Starting the game loop at %s per tick...", cfg.TickInterval)
	loop := engine.NewLoop(store, eventLog, appLogger, cfg.TickInterval)
	go loop.Start(ctx)

	appLogger.Info("Bootstrapping WebSocket Hub...")
	hub := network.NewHub(appLogger, loop)
	go hub.Run(ctx)
	hub.StartEventPoller(ctx, eventLog)

	appLogger.Info("Bootstrapping content enrichment against %s...", cfg.ArticleAPIBase)
	contentClient := content.NewClient(cfg.ArticleAPIBase, cfg.EnrichTimeout)
	enrichManager := engine.NewEnrichmentManager(store, contentClient, appLogger, cfg.EnrichTimeout)
	store.SetEnricher(enrichManager)

	// Redis is optional: without it the dashboard cache is simply absent.
	var stateCache *cache.StateCache
	if cfg.RedisURL != "" {
		redisClient, err := cache.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			appLogger.Warn("Redis unavailable, running without state cache: %v", err)
		} else {
			defer redisClient.Close()
			stateCache = cache.NewStateCache(redisClient)
			appLogger.Info("Redis state cache connected.")
		}
	}

	// Automated State Backup Routine
	go func() {
		backupTicker := time.NewTicker(cfg.BackupInterval)
		defer backupTicker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-backupTicker.C:
				snap := store.Snapshot()
				game, err := storage.EncodeSnapshot(storage.DefaultGameID, snap)
				if err != nil {
					appLogger.Error("Failed to encode snapshot for backup: %v", err)
					continue
				}
				if err := snapRepo.Save(ctx, game); err != nil {
					appLogger.Error("Failed to back up game state: %v", err)
				}
				if stateCache != nil {
					_ = stateCache.SetGameState(ctx, cache.GameState{
						GameID:          storage.DefaultGameID,
						Cash:            snap.Cash,
						Tick:            snap.Tick,
						Date:            engine.FormatDate(snap.Tick),
						Subscribers:     snap.Subscribers,
						StaffCount:      len(snap.Staff),
						PendingArticles: len(store.PendingArticles()),
						PublishedViews:  store.TotalPublishedViews(),
						LastSync:        time.Now().Unix(),
					})
				}
			}
		}
	}()

	// Setup API Routes
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r, appLogger)
	})

	api := network.NewNewsroomAPI(store, loop, storage.NewRecapper(eventRepo), contentClient, appLogger)
	api.SetResetHook(func() {
		if err := snapRepo.Clear(ctx, storage.DefaultGameID); err != nil {
			appLogger.Error("Failed to clear saved game on reset: %v", err)
		}
		if err := eventRepo.Clear(ctx, storage.DefaultGameID); err != nil {
			appLogger.Error("Failed to clear persisted events on reset: %v", err)
		}
		if stateCache != nil {
			_ = stateCache.Invalidate(ctx, storage.DefaultGameID)
		}
	})
	api.RegisterRoutes(mux)

	feed := network.NewFeedHandler(eventLog, appLogger)
	feed.RegisterRoutes(mux)

	mux.HandleFunc("/api/metrics", metrics.Handler())
	mux.HandleFunc("/metrics", metrics.PrometheusHandler())

	srv := &http.Server{Addr: cfg.Addr, Handler: mux}
	go func() {
		log.Printf("[NEWSROOM] HTTP API & WS Server listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	log.Println("[NEWSROOM] Server running. Press Ctrl+C to exit.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[NEWSROOM] Shutting down...")
	loop.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown error: %v", err)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow cross-origin requests for the Next.js dev server
	},
}

// serveWs handles websocket requests from the peer.
func serveWs(hub *network.Hub, w http.ResponseWriter, r *http.Request, log *logger.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Failed to upgrade websocket connection: %v", err)
		return
	}

	client := network.NewClient(hub, conn)
	client.Register()

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.WritePump()
	go client.ReadPump()
}
