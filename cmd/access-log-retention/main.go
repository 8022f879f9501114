package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/talent-marketplace/internal/app/retention"
	"github.com/magabrotheeeer/talent-marketplace/internal/config"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/sl"
)

func main() {
	once := flag.Bool("once", false, "run a single cleanup pass and exit")
	flag.Parse()

	cfg := config.MustLoad()
	logger := sl.SetupLogger(cfg.Env, os.Stdout)

	logger.Info("starting access log retention",
		slog.String("env", cfg.Env),
		slog.Int("retention_days", cfg.AccessLog.RetentionDays),
		slog.Bool("once", *once),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := retention.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize retention app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx, *once); err != nil {
		logger.Error("retention app stopped with error", sl.Err(err))
		os.Exit(1)
	}
}
