// Package retention собирает воркер очистки журнала доступа.
package retention

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/talent-marketplace/internal/config"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/talent-marketplace/internal/services/accesslog"
	retentionservice "github.com/magabrotheeeer/talent-marketplace/internal/services/retention"
	"github.com/magabrotheeeer/talent-marketplace/internal/storage/repository"
)

const (
	dbReadyAttempts = 10
	dbReadyDelay    = 3 * time.Second
)

// App — воркер очистки.
type App struct {
	db      io.Closer
	service *retentionservice.Service
	logger  *slog.Logger
}

func waitForDB(ctx context.Context, db *repository.Storage) error {
	var err error
	for range dbReadyAttempts {
		if err = repository.CheckDatabaseReady(ctx, db); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dbReadyDelay):
		}
	}
	return fmt.Errorf("database not ready after retries: %w", err)
}

// New подключается к базе и дожидается применённых миграций.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err := waitForDB(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	accessLog := accesslog.NewService(db, logger, cfg.AccessLog.WriteTimeout, cfg.AccessLog.RetentionDays)

	return &App{
		db:      db,
		service: retentionservice.NewService(accessLog, logger, cfg.AccessLog.CleanupInterval, cfg.AccessLog.RetentionDays),
		logger:  logger,
	}, nil
}

// Run чистит журнал по расписанию до отмены ctx. При once выполняет один
// проход и возвращает его ошибку, чтобы планировщик видел сбой.
func (a *App) Run(ctx context.Context, once bool) error {
	var err error
	if once {
		var deleted int64
		if deleted, err = a.service.RunOnce(ctx); err == nil {
			a.logger.Info("single cleanup pass finished", slog.Int64("deleted", deleted))
		}
	} else {
		a.service.Run(ctx)
	}

	a.logger.Info("closing database")
	if cerr := a.db.Close(); cerr != nil {
		a.logger.Error("failed to close database", sl.Err(cerr))
	}
	return err
}
