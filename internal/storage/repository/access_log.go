package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

const accessLogColumns = `id, COALESCE(user_id, ''), resource_type, resource_id, action,
	granted, reason, ip_address, user_agent, created_at`

// InsertAccessLog сохраняет запись журнала доступа.
func (s *Storage) InsertAccessLog(ctx context.Context, entry models.AccessLogEntry) error {
	const op = "storage.InsertAccessLog"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO access_logs (id, user_id, resource_type, resource_id, action,
				  granted, reason, ip_address, user_agent, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := s.DB.ExecContext(ctx, query,
		entry.ID, nullString(entry.UserID), entry.ResourceType, entry.ResourceID, entry.Action,
		entry.Granted, entry.Reason, entry.IPAddress, entry.UserAgent, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// AccessLogsByUser возвращает последние limit записей пользователя, новые первыми.
func (s *Storage) AccessLogsByUser(ctx context.Context, userID string, limit int) ([]models.AccessLogEntry, error) {
	const op = "storage.AccessLogsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accessLogColumns + `
			  FROM access_logs
			  WHERE user_id = $1
			  ORDER BY created_at DESC
			  LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	entries, err := scanAccessLogs(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

// AccessLogsByResource возвращает последние limit записей по ресурсу.
func (s *Storage) AccessLogsByResource(ctx context.Context, resourceType, resourceID string, limit int) ([]models.AccessLogEntry, error) {
	const op = "storage.AccessLogsByResource"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accessLogColumns + `
			  FROM access_logs
			  WHERE resource_type = $1 AND resource_id = $2
			  ORDER BY created_at DESC
			  LIMIT $3`
	rows, err := s.DB.QueryContext(ctx, query, resourceType, resourceID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	entries, err := scanAccessLogs(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

// AccessLogStats считает решения начиная с since.
func (s *Storage) AccessLogStats(ctx context.Context, since time.Time) (models.AccessStats, error) {
	const op = "storage.AccessLogStats"
	stats := models.AccessStats{Since: since, ByResourceType: map[string]int{}}
	select {
	case <-ctx.Done():
		return stats, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT resource_type,
				  COUNT(*) FILTER (WHERE granted),
				  COUNT(*) FILTER (WHERE NOT granted)
			  FROM access_logs
			  WHERE created_at >= $1
			  GROUP BY resource_type`
	rows, err := s.DB.QueryContext(ctx, query, since)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var resourceType string
		var granted, denied int
		if err := rows.Scan(&resourceType, &granted, &denied); err != nil {
			return stats, fmt.Errorf("%s: %w", op, err)
		}
		stats.Granted += granted
		stats.Denied += denied
		stats.ByResourceType[resourceType] = granted + denied
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}
	stats.Total = stats.Granted + stats.Denied
	return stats, nil
}

// DeleteAccessLogsBefore удаляет записи старше before и возвращает их число.
func (s *Storage) DeleteAccessLogsBefore(ctx context.Context, before time.Time) (int64, error) {
	const op = "storage.DeleteAccessLogsBefore"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM access_logs WHERE created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func scanAccessLogs(rows *sql.Rows) ([]models.AccessLogEntry, error) {
	defer rows.Close()
	entries := make([]models.AccessLogEntry, 0)
	for rows.Next() {
		var e models.AccessLogEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.ResourceType, &e.ResourceID, &e.Action,
			&e.Granted, &e.Reason, &e.IPAddress, &e.UserAgent, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
