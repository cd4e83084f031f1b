package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/api"
	"github.com/selah-content-api/internal/bus"
	"github.com/selah-content-api/internal/config"
	"github.com/selah-content-api/internal/content"
	"github.com/selah-content-api/internal/overlay"
	"github.com/selah-content-api/internal/remote"
	"github.com/selah-content-api/internal/service"
	"github.com/selah-content-api/internal/store"
	"github.com/selah-content-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "json")
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().
		Str("mode", string(cfg.Mode)).
		Str("store", cfg.Store.Backend).
		Msg("Starting Selah content API server...")

	// Initialize the persistence backend
	st := newStore(cfg, log)

	// Wire the content pipeline
	b := bus.New()
	engine := content.NewEngine(content.Default(), st, log)
	stores := overlay.NewStores(st, b, log)
	fetcher := remote.NewFetcher(cfg.Remote, b, log)
	resolver := overlay.NewResolver(cfg.Mode, stores.Images, stores.Overlay, fetcher, log)
	writeBack := remote.NewWriteBack(cfg.Remote, log)

	// Initialize services
	services := service.NewServices(engine, stores, resolver, fetcher, writeBack, log)

	// Start the background mapping refresher
	go fetcher.Start(context.Background())

	// Initialize router
	router := api.NewRouter(services, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop the mapping refresher
	fetcher.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

// newStore picks the configured persistence backend. The file store
// shares the memory store's degrade semantics, so startup never fails
// on storage.
func newStore(cfg *config.Config, log zerolog.Logger) store.Store {
	if cfg.Store.Backend == "file" {
		return store.NewFileStore(cfg.Store.FilePath, log)
	}
	return store.NewMemoryStore()
}
