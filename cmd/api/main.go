package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"zenvor/internal/config"
	"zenvor/internal/database"
	"zenvor/internal/domain/demo"
	"zenvor/internal/domain/lead"
	"zenvor/internal/pkg/logger"
	"zenvor/internal/pkg/telemetry"
	"zenvor/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("api stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(sctx); err != nil {
			zl.Warn("telemetry shutdown", zap.Error(err))
		}
	}()

	metrics, err := telemetry.NewIntakeMetrics(telemetry.Meter(""))
	if err != nil {
		return err
	}

	db, err := database.ConnectWithRetry(ctx, cfg.DatabaseURL, zl, database.DefaultConnectWait)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, &lead.Lead{}, &demo.Request{}); err != nil {
		return err
	}

	completer, err := server.NewCompleter(ctx, cfg.Chat)
	if err != nil {
		return err
	}
	if completer == nil {
		zl.Info("chat proxy disabled, no API key configured")
	}

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: server.NewRouter(server.Deps{
			Config:    cfg,
			DB:        db,
			Log:       zl,
			Metrics:   metrics,
			Completer: completer,
		}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zl.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zl.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
