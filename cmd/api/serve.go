package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/consul"
	"inkwell/internal/events"
	"inkwell/internal/server"
	"inkwell/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Args:  cobra.NoArgs,
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fail(err)
			}
			if err := serve(cfg); err != nil {
				return fail(err)
			}
			return nil
		},
	}
}

func serve(cfg *config.Config) error {
	gin.SetMode(cfg.Server.GinMode)
	log := slog.Default()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("Schema applied")
	}

	redis := cache.New(ctx, cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redis.Close()

	publisher, err := events.NewPublisher(events.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.BlogEventsTopic,
	}, log)
	if err != nil {
		log.Warn("Kafka unavailable, blog events disabled", "error", err)
		publisher = events.Noop{}
	}
	defer publisher.Close()

	deps := server.Deps{DB: db, Cache: redis, Events: publisher, Logger: log}
	if store, err := openStorage(ctx, cfg); err == nil {
		deps.Storage = store
	} else if !errors.Is(err, storage.ErrDisabled) {
		log.Warn("Storage unavailable, file endpoints disabled", "error", err)
	}

	httpServer := server.New(cfg, deps).HTTPServer()

	deregister := register(cfg)
	defer deregister()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	log.Info("Server exiting")
	return nil
}

func openStorage(ctx context.Context, cfg *config.Config) (storage.Service, error) {
	store, err := storage.New(ctx, storage.Config{
		Endpoint:       cfg.S3.Endpoint,
		PublicEndpoint: cfg.S3.PublicEndpoint,
		AccessKey:      cfg.S3.AccessKey,
		SecretKey:      cfg.S3.SecretKey,
		Bucket:         cfg.S3.Bucket,
		Region:         cfg.S3.Region,
		UseSSL:         cfg.S3.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	bucketCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := store.EnsureBucket(bucketCtx); err != nil {
		slog.Warn("Failed to ensure bucket exists", "bucket", cfg.S3.Bucket, "error", err)
	}
	return store, nil
}

// register announces the service to Consul when configured. The returned
// func deregisters it and is always safe to call.
func register(cfg *config.Config) func() {
	if cfg.Consul.Addr == "" {
		return func() {}
	}

	client, err := consul.NewClient(cfg.Consul.Addr, cfg.Consul.Token)
	if err != nil {
		slog.Warn("Consul unavailable, skipping registration", "error", err)
		return func() {}
	}

	svc := consul.Service{
		Name:       cfg.Consul.ServiceName,
		Host:       cfg.Consul.ServiceHost,
		Port:       cfg.Server.Port,
		Tags:       []string{"blog", "api"},
		HealthPath: "/health",
	}
	if err := client.Register(svc); err != nil {
		slog.Warn("Consul registration failed", "error", err)
		return func() {}
	}

	return func() {
		if err := client.Deregister(svc.ID()); err != nil {
			slog.Warn("Failed to deregister from Consul", "error", err)
			return
		}
		slog.Info("Deregistered from Consul", "service_id", svc.ID())
	}
}
