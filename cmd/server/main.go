package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shelfmark/shelfmark/config"
	"github.com/shelfmark/shelfmark/internal/api/handler"
	"github.com/shelfmark/shelfmark/internal/api/middleware"
	"github.com/shelfmark/shelfmark/internal/api/router"
	"github.com/shelfmark/shelfmark/internal/repository"
	"github.com/shelfmark/shelfmark/internal/service"
	"github.com/shelfmark/shelfmark/pkg/database"
	"github.com/shelfmark/shelfmark/pkg/logger"
	"github.com/shelfmark/shelfmark/pkg/tracing"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg.Server.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			panic(err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := must(tracing.Init(ctx, "shelfmark", cfg.Tracing.OTLPEndpoint))
	defer func() { _ = shutdownTracing(context.Background()) }()

	db := must(database.InitDB(cfg))

	// repositories & services
	profileRepo := repository.NewProfileRepository(db)
	followRepo := repository.NewFollowRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	aliasRepo := repository.NewAliasRepository(db)

	access := service.NewAccessService(db, profileRepo, followRepo, catalogRepo, aliasRepo, cfg.Username)
	profileSvc := service.NewProfileService(profileRepo, access, cfg.Username)
	catalogSvc := service.NewCatalogService(catalogRepo, access)

	var limiter middleware.Limiter
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter = middleware.NewRedisLimiter(rdb, cfg.Limits.PublicRPS)
	} else {
		limiter = middleware.NewLocalLimiter(cfg.Limits.PublicRPS, cfg.Limits.PublicBurst)
	}

	h := handler.New(access, profileSvc, catalogSvc)
	engine := router.Setup(cfg, h, limiter)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: engine}
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
