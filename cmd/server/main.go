// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jason-s-yu/clueboard/internal/auth"
	"github.com/jason-s-yu/clueboard/internal/cache"
	"github.com/jason-s-yu/clueboard/internal/cluebase"
	"github.com/jason-s-yu/clueboard/internal/config"
	"github.com/jason-s-yu/clueboard/internal/database"
	"github.com/jason-s-yu/clueboard/internal/game"
	"github.com/jason-s-yu/clueboard/internal/handlers"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("unknown LOG_LEVEL %q, using info", cfg.LogLevel)
	}

	if cfg.JWTPublicKeyPath != "" {
		err = auth.InitFromPath(cfg.JWTPrivateKeyPath, cfg.JWTPublicKeyPath, cfg.TokenExpireTime)
	} else {
		logger.Warn("JWT_PUBLIC_KEY_PATH not set, generating an ephemeral signing key")
		err = auth.Init(cfg.TokenExpireTime)
	}
	if err != nil {
		logger.Fatalf("failed to init auth: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.Connect(ctx, cfg.PostgresDSN())
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()
	logger.Info("connected to postgres")

	if cfg.MigrateOnStart {
		if err := database.Migrate(ctx, pool); err != nil {
			logger.Fatalf("failed to migrate: %v", err)
		}
	}

	var source game.ClueSource = cluebase.NewClient(cfg.CluebaseURL, cfg.CluebaseTimeout, logger)
	var publisher *cache.Publisher
	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			logger.Fatalf("failed to connect to redis: %v", err)
		}
		defer rdb.Close()
		logger.Infof("connected to redis at %s", cfg.RedisAddr)
		source = cache.NewCachedSource(source, rdb, cfg.CluePoolCacheTTL, logger)
		publisher = cache.NewPublisher(rdb, cfg.GameEventsQueue)
	}

	svc := game.NewService(database.NewStore(pool), source, logger)
	svc.FetchTimeout = cfg.CluebaseTimeout
	if publisher != nil {
		svc.Events = publisher
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewAPIServer(svc, logger).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Running on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server exited: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
}
