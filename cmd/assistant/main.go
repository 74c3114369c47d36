// Campus assistant service entry point.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campus-assistant-engine/internal/analytics"
	"github.com/campus-assistant-engine/internal/config"
	"github.com/campus-assistant-engine/internal/engine"
	"github.com/campus-assistant-engine/internal/history"
	"github.com/campus-assistant-engine/internal/server"
)

func main() {
	configPath := flag.String("config", "assistant.yaml", "path to configuration file")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("Starting campus assistant engine")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// History backend: in-memory by default, Redis when configured so
	// several instances can share session logs.
	var store history.Store
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("Redis unreachable", zap.Error(err))
		}
		store = history.NewRedisStore(client, logger)
		logger.Info("Using Redis history store", zap.String("addr", cfg.Redis.Addr))
	} else {
		store = history.NewMemoryStore(cfg.Engine.MaxSessions, logger)
	}

	var publisher analytics.Publisher = analytics.Nop{}
	if cfg.NATS.URL != "" {
		p, err := analytics.Connect(cfg.NATS.URL, cfg.NATS.Subject, logger)
		if err != nil {
			logger.Warn("Analytics disabled, NATS unreachable", zap.Error(err))
		} else {
			publisher = p
			logger.Info("Analytics publishing enabled", zap.String("subject", cfg.NATS.Subject))
		}
	}

	eng, err := engine.New(engine.Config{
		Store:       store,
		Analytics:   publisher,
		Logger:      logger,
		MaxSessions: cfg.Engine.MaxSessions,
	})
	if err != nil {
		logger.Fatal("Failed to create engine", zap.Error(err))
	}
	defer eng.Close()

	auth := server.NewRoleMiddleware(cfg.Auth.JWTSecret, logger)
	srv := server.New(eng, auth, logger)

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.Server.CORSOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      cors(srv.Router()),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", zap.String("addr", cfg.Server.Addr))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
}
