package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "weightlog/internal/adapter/http"
	"weightlog/internal/adapter/memory"
	"weightlog/internal/adapter/postgres"
	"weightlog/internal/adapter/sqlite"
	"weightlog/internal/app"
	"weightlog/internal/config"
	"weightlog/internal/domain"
)

type kvStore interface {
	domain.KVStore
	io.Closer
}

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	kv, err := openStore(cfg)
	if err != nil {
		log.Fatalf("storage open: %v", err)
	}
	defer func() { _ = kv.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	entries := app.NewEntryStore(kv)
	if err := entries.Load(ctx); err != nil {
		log.Fatalf("load entries: %v", err)
	}
	profiles := app.NewProfileService(kv)
	if err := profiles.Load(ctx); err != nil {
		log.Fatalf("load profile: %v", err)
	}
	cancel()
	log.Printf("loaded %d entries from %s storage (setup complete: %t)", len(entries.Snapshot()), cfg.Storage, profiles.IsSetup())

	dashboard := app.NewDashboardService(entries, profiles)
	h := adapthttp.New(entries, profiles, dashboard, cfg.WebDir).
		WithChartSize(cfg.ChartWidth, cfg.ChartHeight).
		Handler()

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-shutdownCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

func openStore(cfg config.Config) (kvStore, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		return postgres.Open(cfg.DatabaseURL)
	case config.StorageMemory:
		log.Printf("using in-memory storage; data is lost on restart")
		return memory.New(), nil
	default:
		return sqlite.Open(cfg.SQLitePath)
	}
}
