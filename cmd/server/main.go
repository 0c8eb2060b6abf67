package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pcosta/flashdeck/internal/api"
	"github.com/pcosta/flashdeck/internal/auth"
	"github.com/pcosta/flashdeck/internal/cache"
	"github.com/pcosta/flashdeck/internal/config"
	"github.com/pcosta/flashdeck/internal/logger"
	"github.com/pcosta/flashdeck/internal/remote/postgres"
	"github.com/pcosta/flashdeck/internal/services"
	"github.com/pcosta/flashdeck/internal/sync"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("FlashDeck Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("cache_path=%s", cfg.CachePath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("pull_timeout=%s", cfg.PullTimeout)

	// Open the local cache
	store, err := cache.Open(cfg.CachePath)
	if err != nil {
		log.Error("failed to open cache: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing cache")
		store.Close()
	}()

	// Connect to the remote store and bring its schema up to date
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to remote store: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		log.Error("failed to run migrations: %v", err)
		os.Exit(1)
	}
	remoteStore := postgres.NewStore(pool)

	// Session lifecycle drives the sync engine: sign-in pulls, sign-out wipes
	session := auth.NewSession()
	engine := sync.New(store, remoteStore, session, cfg.PullTimeout)
	engine.Bind(session)

	srv := &api.Server{
		Decks:      services.NewDeckService(store, remoteStore, session),
		Flashcards: services.NewFlashcardService(store, remoteStore, session),
		Progress:   services.NewProgressService(store),
		Cache:      store,
		Session:    session,
		Verifier:   auth.NewJWTVerifier(cfg.JWTSecret),
		Sync:       engine,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Flush whatever practice left queued before the process dies
	if engine.Push(shutdownCtx) {
		log.Debug("pending updates flushed")
	} else {
		log.Warn("pending updates retained for next start")
	}

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("FlashDeck Server Stopped")
	log.Info("===========================================")
}
