package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mongo "mentor-match/internal/clients/mongo"
	"mentor-match/internal/config"
	"mentor-match/internal/logger"

	"github.com/grafana/pyroscope-go"
	_ "go.uber.org/automaxprocs"
	"golang.org/x/sync/errgroup"
)

const shutdownGrace = 25 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.New(os.Stderr, "mentor-match: ", log.LstdFlags).Print(err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logg, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	stopProfiler := startProfiler(cfg, logg)
	defer stopProfiler()

	if _, _, err := mongo.Init(ctx, cfg, logg); err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}

	app, err := setupRouter(ctx, cfg)
	if err != nil {
		_ = mongo.Shutdown(context.Background())
		return fmt.Errorf("build router: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logg.Info("starting MentorMatch", "port", cfg.AppPort, "auth_required", cfg.AuthRequired, "media", cfg.MediaProvider)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.AppPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return err
		}
		return mongo.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logg.Info("graceful shutdown complete")
	return nil
}

// startProfiler pushes continuous profiles when PYROSCOPE_SERVER_ADDRESS is
// set. The returned func stops it and is always safe to call.
func startProfiler(cfg config.Config, logg *slog.Logger) func() {
	if cfg.PyroscopeAddr == "" {
		return func() {}
	}
	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: "mentor-match",
		ServerAddress:   cfg.PyroscopeAddr,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		logg.Warn("pyroscope disabled", "err", err)
		return func() {}
	}
	logg.Info("pyroscope profiling enabled", "server", cfg.PyroscopeAddr)
	return func() { _ = profiler.Stop() }
}
