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

	"github.com/folio/internal/auth"
	"github.com/folio/internal/config"
	"github.com/folio/internal/db"
	"github.com/folio/internal/handler"
	"github.com/folio/internal/router"
	"github.com/folio/internal/service"
	"github.com/folio/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := cfg.Logger(os.Stdout)
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.AppConfig, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 初始化数据库
	gdb, err := db.Open(cfg.DBOptions())
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	if err := db.EnsureAdmin(gdb, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	var limiter *auth.RateLimiter
	if cfg.RateLimitEnabled() {
		client, err := auth.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			return err
		}
		defer client.Close()
		limiter = auth.NewRateLimiter(client, cfg.Redis.LoginRateLimit, cfg.Redis.LoginRateWindow)
		logger.Info("login rate limit enabled", "limit", cfg.Redis.LoginRateLimit, "window", cfg.Redis.LoginRateWindow)
	}

	api := handler.NewAPI(handler.Options{
		DB:      gdb,
		Store:   store,
		Tokens:  auth.NewTokenService(cfg.TokenSecret, cfg.TokenTTL),
		Limiter: limiter,
		Site:    service.FeedSite{Name: cfg.SiteName, BaseURL: cfg.SiteBaseURL},
		Logger:  logger,
	})

	routerCfg := router.Config{
		SessionSecret: cfg.SessionSecret,
		UploadURLPath: cfg.UploadURLPath,
		SecureCookie:  gin.Mode() == gin.ReleaseMode,
	}
	if cfg.StorageBackend == config.StorageLocal {
		routerCfg.UploadDir = cfg.UploadDir
	}

	// 设置并运行 Gin 服务器
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router.SetupRouter(api, routerCfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.ListenAddr, "storage", cfg.StorageBackend, "database", cfg.DatabaseDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.AppConfig) (storage.Store, error) {
	if cfg.StorageBackend == config.StorageS3 {
		return storage.NewS3(ctx, cfg.S3Options())
	}
	return storage.NewLocal(cfg.UploadDir, cfg.UploadURLPath)
}
