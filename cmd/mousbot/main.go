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

	"github.com/fxelysrism/a-map-of-us-bot/internal/config"
	"github.com/fxelysrism/a-map-of-us-bot/internal/core/ports"
	"github.com/fxelysrism/a-map-of-us-bot/internal/health"
	"github.com/fxelysrism/a-map-of-us-bot/internal/mous"
	"github.com/fxelysrism/a-map-of-us-bot/internal/scheduler"
	"github.com/fxelysrism/a-map-of-us-bot/internal/storage"
	"github.com/fxelysrism/a-map-of-us-bot/internal/ui/discord"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return err
	}

	store, err := selectStorage(ctx, cfg)
	if err != nil {
		return err
	}

	source := mous.NewClient(cfg.APIBase)

	bot, err := discord.New(cfg, source)
	if err != nil {
		return err
	}
	if err := bot.Start(); err != nil {
		return err
	}
	defer bot.Stop()

	sched := scheduler.New(source, store, bot, loc, bot.ReadyGate())
	go sched.Run(ctx)

	var healthSrv *http.Server
	if cfg.HealthPort != "" {
		healthSrv = health.NewServer(cfg.HealthPort)
		go func() {
			slog.Info("health endpoint listening", slog.String("addr", healthSrv.Addr))
			if err := healthSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("health server failed", slog.String("error", err.Error()))
			}
		}()
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	cancel()
	if healthSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = healthSrv.Shutdown(shutdownCtx)
	}
	return nil
}

// selectStorage prefers Postgres when DATABASE_URL is set, otherwise the
// local JSON file.
func selectStorage(ctx context.Context, cfg config.Config) (ports.Storage, error) {
	if cfg.DatabaseURL != "" {
		store, err := storage.NewPostgresStorage(ctx, cfg.DatabaseURL)
		if err == nil {
			slog.Info("daily-post marker: postgres")
			return store, nil
		}
		slog.Warn("postgres unavailable, falling back to file",
			slog.String("error", err.Error()))
	}
	store, err := storage.NewJSONStorage(cfg.StateFile)
	if err != nil {
		return nil, err
	}
	slog.Info("daily-post marker: json file", slog.String("path", cfg.StateFile))
	return store, nil
}
