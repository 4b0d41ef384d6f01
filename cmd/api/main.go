package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mdunham726-coder/wyrdreach/internal/config"
	"github.com/mdunham726-coder/wyrdreach/internal/handlers"
	"github.com/mdunham726-coder/wyrdreach/internal/logger"
	"github.com/mdunham726-coder/wyrdreach/internal/services"
	"github.com/mdunham726-coder/wyrdreach/pkg/action"
	"github.com/mdunham726-coder/wyrdreach/pkg/catalogs"
	"github.com/mdunham726-coder/wyrdreach/pkg/conditionals"
	"github.com/mdunham726-coder/wyrdreach/pkg/session"
	"github.com/mdunham726-coder/wyrdreach/pkg/textfilter"
	"github.com/mdunham726-coder/wyrdreach/pkg/turn"
)

// startingHints are the narrator flavor lines surfaced once a session has
// been running a while — a small, fixed set rather than a data file, since
// nothing in this core yet loads hint tables from disk.
var startingHints = []conditionals.ContingencyPrompt{
	{Prompt: "the light is changing; consider whether the party should make camp soon", When: &conditionals.ConditionalWhen{MinTurns: intPtr(20)}},
}

func intPtr(n int) *int { return &n }

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("starting wyrdreach API",
		"port", cfg.Port,
		"environment", cfg.Environment)

	store := session.NewStore(cfg.RedisURL, cfg.SaveDir, log)

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer pingCancel()
	if err := store.Ping(pingCtx); err != nil {
		log.Error("failed to connect to session store", "error", err)
		os.Exit(1)
	}
	log.Info("session store connection established")

	// deepseek is left nil (rather than a non-nil *DeepseekService held
	// behind these interfaces) when no key is configured, so Normalizer,
	// the turn narrator, and the quest narrator all correctly see a nil
	// interface and take their fallback paths instead of calling a
	// method on a nil receiver.
	var (
		parser        action.Parser
		narrator      turn.Narrator
		questNarrator turn.QuestNarrator
	)
	if cfg.DeepseekAPIKey != "" {
		deepseek := services.NewDeepseekService(cfg.DeepseekAPIKey, log)
		parser, narrator, questNarrator = deepseek, deepseek, deepseek
		log.Info("deepseek narrator and parser enabled")
	} else {
		log.Warn("DEEPSEEK_API_KEY not set — narration and parsing fall back to deterministic templates")
	}

	cache := services.NewRedisService(cfg.RedisURL, log)
	intentCache := services.NewIntentCache(cache, log)

	cat := catalogs.Load()

	orchestrator := &turn.Orchestrator{
		Catalogs: cat,
		Normalizer: action.Normalizer{
			Parser: parser,
			Cache:  intentCache,
		},
		Narrator:      narrator,
		QuestNarrator: questNarrator,
		Hints:         startingHints,
		Filter:        textfilter.NewProfanityFilter(),
	}

	mux := http.NewServeMux()

	gameHandler := handlers.NewGameHandler(store, orchestrator, cat, log)
	mux.HandleFunc("/init", gameHandler.Init)
	mux.HandleFunc("/reset", gameHandler.Reset)
	mux.HandleFunc("/narrate", gameHandler.Narrate)

	saveHandler := handlers.NewSaveHandler(store, cat, log)
	mux.HandleFunc("/api/save", saveHandler.Save)
	mux.HandleFunc("/api/load", saveHandler.Load)
	mux.HandleFunc("/api/newsave", saveHandler.NewSave)
	mux.HandleFunc("/api/saves", saveHandler.ListSaves)

	questHandler := handlers.NewQuestHandler(store, questNarrator, log)
	mux.HandleFunc("/quest/available", questHandler.Available)
	mux.HandleFunc("/quest/accept", questHandler.Accept)
	mux.HandleFunc("/quest/progress", questHandler.Progress)
	mux.HandleFunc("/quest/complete", questHandler.Complete)
	mux.HandleFunc("/quest/active", questHandler.Active)

	statusHandler := handlers.NewStatusHandler(store, log)
	mux.Handle("/status", statusHandler)

	handler := requestLogger(log, mux)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("error closing session store connection", "error", err)
	}
	if err := cache.Close(); err != nil {
		log.Error("error closing cache connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server exited")
}

// requestLogger logs each request's method, path, and duration. The
// teacher's own internal/middleware package never made it into this copy
// (absent even from its pristine form), so this is a direct net/http
// wrapper rather than an adapted teacher component.
func requestLogger(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
