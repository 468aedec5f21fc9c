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

	"github.com/Skotchmaster/shop_admin/internal/config"
	"github.com/Skotchmaster/shop_admin/internal/es"
	"github.com/Skotchmaster/shop_admin/internal/httpserver"
	"github.com/Skotchmaster/shop_admin/internal/mykafka"
	"github.com/Skotchmaster/shop_admin/internal/repo"
	"github.com/Skotchmaster/shop_admin/internal/search"
	"github.com/Skotchmaster/shop_admin/internal/service"
	pkgdb "github.com/Skotchmaster/shop_admin/pkg/db"
	"github.com/Skotchmaster/shop_admin/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_error", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx := context.Background()
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db_init_error", "error", err)
		os.Exit(1)
	}
	if err := repo.Migrate(db); err != nil {
		logger.Error("db_migrate_error", "error", err)
		os.Exit(1)
	}
	r := repo.New(db)

	var events service.EventPublisher
	var prod *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod, err = mykafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			logger.Error("kafka_init_error", "error", err)
			os.Exit(1)
		}
		events = prod
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	var indexer service.ProductIndexer
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(es.Config{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword}, logger)
		if err != nil {
			logger.Error("es_init_error", "error", err)
			os.Exit(1)
		}
		indexer = &search.Indexer{ES: esClient, Index: cfg.ESIndex}
	}

	users := &service.UserService{Repo: r, Events: events}
	e := httpserver.NewEcho(logger, cfg.AllowedOrigins)
	httpserver.Register(e, &httpserver.Deps{
		Users:    &httpserver.UsersHTTP{Svc: users},
		Products: &httpserver.ProductsHTTP{Svc: &service.ProductService{Repo: r, Events: events, Indexer: indexer}},
		Orders:   &httpserver.OrdersHTTP{Svc: &service.OrderService{Repo: r, Events: events}},
		Logs:     &httpserver.LogsHTTP{Svc: &service.LogService{Repo: r}},
		Auth: &httpserver.AuthHTTP{Svc: &service.AuthService{
			Repo: r, JWTSecret: cfg.JWTSecret, AccessTTL: cfg.AccessTokenTTL,
		}},
		JWTSecret:    cfg.JWTSecret,
		AuthRequired: cfg.AuthRequired,
		LoginRate:    cfg.LoginRateLimit,
		Ready:        r.Ping,
	})
	if !cfg.AuthRequired {
		logger.Warn("auth_optional", "reason", "API_AUTH_REQUIRED=false, unauthenticated mutations are logged as anonymous")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 2)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting_down")

	// a second signal skips the graceful path
	go func() {
		<-quit
		logger.Warn("force_exit")
		os.Exit(1)
	}()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db_close_error", "error", err)
	}
	if prod != nil {
		if err := prod.Close(); err != nil {
			logger.Error("kafka_close_error", "error", err)
		}
	}
	logger.Info("shutdown_complete")
}
