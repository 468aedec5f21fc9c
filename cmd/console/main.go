package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Skotchmaster/shop_admin/internal/apiclient"
	"github.com/Skotchmaster/shop_admin/internal/config"
	"github.com/Skotchmaster/shop_admin/internal/console"
	"github.com/Skotchmaster/shop_admin/pkg/logging"
)

func main() {
	cfg, err := config.LoadConsole()
	if err != nil {
		slog.Error("config_error", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel).With("service", "shop-console")
	slog.SetDefault(logger)

	var sessions console.SessionStore = console.NewMemoryStore()
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Error("redis_init_error", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		sessions = console.NewRedisStore(rdb)
		logger.Info("sessions_redis", "addr", cfg.RedisAddr)
	} else {
		logger.Info("sessions_memory")
	}

	e := console.New(console.Config{
		API:          apiclient.NewClient(cfg.APIURL, cfg.APITimeout),
		Sessions:     sessions,
		SessionTTL:   cfg.SessionTTL,
		CookieSecure: cfg.CookieSecure,
		Logger:       logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http_listen", "addr", srv.Addr, "api", cfg.APIURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("redis_close_error", "error", err)
		}
	}
	logger.Info("shutdown_complete")
}
