package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vinimqsz/projeto-eng-software/config"
	"github.com/vinimqsz/projeto-eng-software/internal/api/handler"
	"github.com/vinimqsz/projeto-eng-software/internal/api/router"
	"github.com/vinimqsz/projeto-eng-software/internal/audit"
	"github.com/vinimqsz/projeto-eng-software/internal/repository"
	"github.com/vinimqsz/projeto-eng-software/internal/service"
	"github.com/vinimqsz/projeto-eng-software/pkg/database"
	"github.com/vinimqsz/projeto-eng-software/pkg/jwt"
	applogger "github.com/vinimqsz/projeto-eng-software/pkg/logger"
	"github.com/vinimqsz/projeto-eng-software/pkg/redis"
	"github.com/vinimqsz/projeto-eng-software/pkg/validation"
)

func main() {
	// 1. Configuration (.env is optional)
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("LUMINOFF_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting luminoff",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("stamp_policy", cfg.Scheduling.StampPolicy),
	)

	// 3. Database and migrations
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	// 4. Redis is optional; without it tokens cannot be revoked and the
	// current term is read from the database every time.
	var cachePinger handler.Pinger
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, running without cache", zap.Error(err))
		rdb = nil
	} else {
		cachePinger = handler.PingFunc(rdb.Ping)
	}

	validation.Setup()

	// 5. Repository → Service → Handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc, err := service.NewService(cfg, repo, jwtMgr, rdb, logger)
	if err != nil {
		logger.Fatal("init services", zap.Error(err))
	}

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := svc.Auth.EnsureBootstrapAdmin(bootCtx, cfg.Auth.BootstrapAdmin, cfg.Auth.BootstrapPassword); err != nil {
		logger.Error("bootstrap admin", zap.Error(err))
	}
	bootCancel()

	h := handler.NewHandler(svc, handler.NewHealthHandler(sqlDB, cachePinger))
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 6. Background audit
	var scheduler *audit.Scheduler
	if cfg.Scheduling.AuditEnabled {
		scheduler = audit.NewScheduler(audit.NewAuditor(repo.Term, repo.Booking, logger), cfg.Scheduling.AuditCron, logger)
		if err := scheduler.Start(); err != nil {
			logger.Error("start audit scheduler", zap.String("cron", cfg.Scheduling.AuditCron), zap.Error(err))
			scheduler = nil
		}
	}

	// 7. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if scheduler != nil {
		scheduler.Stop()
	}

	_ = sqlDB.Close()
	if rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("server stopped")
}
