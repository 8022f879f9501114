// Package accesslog пишет решения о доступе в журнал и отдаёт его администраторам.
//
// Запись журнала никогда не влияет на само решение: Log не блокирует
// вызывающего и не возвращает ошибок.
package accesslog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/talent-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/talent-marketplace/internal/metrics"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

// Значения по умолчанию.
const (
	DefaultRetentionDays = 90
	DefaultWriteTimeout  = 5 * time.Second
	DefaultLimit         = 50
	MaxLimit             = 500
)

// Repository определяет методы хранилища журнала доступа.
type Repository interface {
	InsertAccessLog(ctx context.Context, entry models.AccessLogEntry) error
	AccessLogsByUser(ctx context.Context, userID string, limit int) ([]models.AccessLogEntry, error)
	AccessLogsByResource(ctx context.Context, resourceType, resourceID string, limit int) ([]models.AccessLogEntry, error)
	AccessLogStats(ctx context.Context, since time.Time) (models.AccessStats, error)
	DeleteAccessLogsBefore(ctx context.Context, before time.Time) (int64, error)
}

// Service — журнал доступа.
type Service struct {
	repo          Repository
	log           *slog.Logger
	writeTimeout  time.Duration
	retentionDays int
	now           func() time.Time
	wg            sync.WaitGroup
}

// NewService создает журнал доступа. Нулевые writeTimeout и retentionDays
// заменяются значениями по умолчанию.
func NewService(repo Repository, log *slog.Logger, writeTimeout time.Duration, retentionDays int) *Service {
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &Service{
		repo:          repo,
		log:           log,
		writeTimeout:  writeTimeout,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// RetentionDays возвращает срок хранения записей по умолчанию.
func (s *Service) RetentionDays() int {
	return s.retentionDays
}

// Log сохраняет решение в фоне. IP и User-Agent берутся из ctx, если не
// заданы в entry. Отмена ctx не прерывает запись.
func (s *Service) Log(ctx context.Context, entry models.AccessLogEntry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}
	if meta, ok := RequestMetaFrom(ctx); ok {
		if entry.IPAddress == "" {
			entry.IPAddress = meta.IPAddress
		}
		if entry.UserAgent == "" {
			entry.UserAgent = meta.UserAgent
		}
	}
	metrics.AccessDecisionsTotal.WithLabelValues(entry.ResourceType, entry.Action, metrics.Result(entry.Granted)).Inc()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.writeTimeout)
		defer cancel()

		if err := s.repo.InsertAccessLog(writeCtx, entry); err != nil {
			metrics.AccessLogWriteErrorsTotal.Inc()
			s.log.Error("failed to write access log",
				slog.String("resource_type", entry.ResourceType),
				slog.String("action", entry.Action),
				sl.Err(err))
		}
	}()
}

// Wait дожидается завершения фоновых записей.
func (s *Service) Wait() {
	s.wg.Wait()
}

// ByUser возвращает последние записи пользователя.
func (s *Service) ByUser(ctx context.Context, userID string, limit int) ([]models.AccessLogEntry, error) {
	const op = "accesslog.ByUser"
	entries, err := s.repo.AccessLogsByUser(ctx, userID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

// ByResource возвращает последние записи по ресурсу.
func (s *Service) ByResource(ctx context.Context, resourceType, resourceID string, limit int) ([]models.AccessLogEntry, error) {
	const op = "accesslog.ByResource"
	entries, err := s.repo.AccessLogsByResource(ctx, resourceType, resourceID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

// Stats возвращает статистику решений начиная с since.
func (s *Service) Stats(ctx context.Context, since time.Time) (models.AccessStats, error) {
	const op = "accesslog.Stats"
	stats, err := s.repo.AccessLogStats(ctx, since)
	if err != nil {
		return models.AccessStats{}, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

// Cleanup удаляет записи старше olderThanDays дней. При olderThanDays <= 0
// используется срок хранения сервиса.
func (s *Service) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	const op = "accesslog.Cleanup"
	if olderThanDays <= 0 {
		olderThanDays = s.retentionDays
	}
	cutoff := s.now().UTC().AddDate(0, 0, -olderThanDays)

	deleted, err := s.repo.DeleteAccessLogsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	metrics.AccessLogCleanupDeletedTotal.Add(float64(deleted))
	s.log.Info("access log cleanup finished",
		slog.Int("older_than_days", olderThanDays),
		slog.Int64("deleted", deleted))
	return deleted, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}
