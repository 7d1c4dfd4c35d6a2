package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/vytor/emojiabc/internal/api"
	"github.com/vytor/emojiabc/internal/catalog"
	"github.com/vytor/emojiabc/internal/config"
	"github.com/vytor/emojiabc/internal/db"
	"github.com/vytor/emojiabc/internal/logger"
	"github.com/vytor/emojiabc/internal/repository/sqlite"
	"github.com/vytor/emojiabc/internal/services"
	"github.com/vytor/emojiabc/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("Alphabet Emoji Game Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("catalog_path=%q", cfg.CatalogPath)
	log.Debug("static_dir=%s", cfg.StaticDir)
	log.Debug("history_policy=%s", cfg.Policy())
	log.Debug("accuracy_formula=%s", cfg.Formula())
	log.Debug("session_ttl=%v", cfg.SessionTTL)
	log.Debug("session_prune_interval=%v", cfg.SessionPruneInterval)
	log.Debug("worker_count=%d", cfg.WorkerCount)
	log.Debug("worker_queue_size=%d", cfg.WorkerQueueSize)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Error("failed to load emoji catalog: %v", err)
		os.Exit(1)
	}
	if missing := cat.Missing(); len(missing) > 0 {
		log.Warn("catalog has no entries for %s; those letters will show %s",
			strings.Join(missing, ","), catalog.Sentinel.Emoji)
	}
	log.Info("catalog loaded with %d letters", len(cat.Letters()))

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates()
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}

	gameService := services.NewGameService(sqlite.NewSessionRepository(database.DB), cat, services.GameOptions{
		Policy:  cfg.Policy(),
		Formula: cfg.Formula(),
	})

	srv := &api.Server{
		GameService:  gameService,
		DB:           database,
		Templates:    tmpl,
		StaticDir:    cfg.StaticDir,
		CookieSecure: cfg.CookieSecure,
		SessionTTL:   cfg.SessionTTL,
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start(context.Background())
	pool.Every(cfg.SessionPruneInterval, func() worker.Job {
		return &worker.PruneSessionsJob{Sessions: gameService, TTL: cfg.SessionTTL}
	})

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

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping worker pool")
	pool.Stop()

	log.Info("===========================================")
	log.Info("Alphabet Emoji Game Server Stopped")
	log.Info("===========================================")
}
