// Package retention периодически удаляет старые записи журнала доступа.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/talent-marketplace/internal/lib/sl"
)

// DefaultInterval — период очистки по умолчанию.
const DefaultInterval = 24 * time.Hour

// Cleaner удаляет записи старше olderThanDays дней.
type Cleaner interface {
	Cleanup(ctx context.Context, olderThanDays int) (int64, error)
}

// Service запускает очистку по расписанию.
type Service struct {
	cleaner       Cleaner
	log           *slog.Logger
	interval      time.Duration
	retentionDays int
}

// NewService создает новый экземпляр Service.
func NewService(cleaner Cleaner, log *slog.Logger, interval time.Duration, retentionDays int) *Service {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Service{
		cleaner:       cleaner,
		log:           log,
		interval:      interval,
		retentionDays: retentionDays,
	}
}

// Run выполняет очистку сразу и затем каждые interval, пока ctx не отменён.
// Ошибка отдельного прохода логируется, следующий проход выполняется по расписанию.
func (s *Service) Run(ctx context.Context) {
	s.runLogged(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("retention worker stopped")
			return
		case <-ticker.C:
			s.runLogged(ctx)
		}
	}
}

// RunOnce выполняет одну очистку и возвращает число удалённых записей.
func (s *Service) RunOnce(ctx context.Context) (int64, error) {
	const op = "retention.RunOnce"
	s.log.Info("starting access log cleanup", slog.Int("retention_days", s.retentionDays))
	deleted, err := s.cleaner.Cleanup(ctx, s.retentionDays)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if deleted == 0 {
		s.log.Info("no expired access log entries found")
	}
	return deleted, nil
}

func (s *Service) runLogged(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil {
		s.log.Error("access log cleanup failed", sl.Err(err))
	}
}
