package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

// GetPreferences возвращает настройки уведомлений. Если строки нет,
// возвращаются пустые настройки, что означает «всё включено».
func (s *Storage) GetPreferences(ctx context.Context, userID string) (models.NotificationPreferences, error) {
	const op = "storage.GetPreferences"
	var prefs models.NotificationPreferences
	select {
	case <-ctx.Done():
		return prefs, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var raw []byte
	err := s.DB.QueryRowContext(ctx,
		`SELECT preferences FROM notification_preferences WHERE user_id = $1`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return prefs, fmt.Errorf("%s: %w", op, err)
	}
	return prefs, nil
}

// UpsertPreferences сохраняет настройки целиком, сохраняя отметки
// о последних отправленных письмах.
func (s *Storage) UpsertPreferences(ctx context.Context, userID string, prefs models.NotificationPreferences) error {
	const op = "storage.UpsertPreferences"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	prefs.LastEmailSentAt = nil
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	query := `INSERT INTO notification_preferences (user_id, preferences, updated_at)
			  VALUES ($1, $2::jsonb, NOW())
			  ON CONFLICT (user_id) DO UPDATE
			  SET preferences = EXCLUDED.preferences ||
			          jsonb_build_object('lastEmailSentAt',
			              COALESCE(notification_preferences.preferences->'lastEmailSentAt', '{}'::jsonb)),
			      updated_at = NOW()`
	if _, err := s.DB.ExecContext(ctx, query, userID, string(raw)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RecordEmailSent атомарно записывает время последнего письма данного типа.
func (s *Storage) RecordEmailSent(ctx context.Context, userID string, typ models.NotificationType, at time.Time) error {
	const op = "storage.RecordEmailSent"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	stamp := at.UTC().Format(time.RFC3339Nano)
	query := `INSERT INTO notification_preferences (user_id, preferences, updated_at)
			  VALUES ($1, jsonb_build_object('lastEmailSentAt', jsonb_build_object($2::text, $3::text)), NOW())
			  ON CONFLICT (user_id) DO UPDATE
			  SET preferences = jsonb_set(
			          notification_preferences.preferences,
			          '{lastEmailSentAt}',
			          COALESCE(notification_preferences.preferences->'lastEmailSentAt', '{}'::jsonb)
			              || jsonb_build_object($2::text, $3::text)),
			      updated_at = NOW()`
	if _, err := s.DB.ExecContext(ctx, query, userID, string(typ), stamp); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
