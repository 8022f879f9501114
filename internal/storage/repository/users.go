package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/talent-marketplace/internal/models"
	"github.com/magabrotheeeer/talent-marketplace/internal/storage"
)

// UpsertUser сохраняет или обновляет данные пользователя.
func (s *Storage) UpsertUser(ctx context.Context, u models.User) error {
	const op = "storage.UpsertUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (id, email, role, validation_status)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (id) DO UPDATE
			  SET email = EXCLUDED.email, role = EXCLUDED.role,
			      validation_status = EXCLUDED.validation_status`
	if _, err := s.DB.ExecContext(ctx, query, u.ID, u.Email, string(u.Role), string(u.ValidationStatus)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUserEmail возвращает адрес почты пользователя.
func (s *Storage) GetUserEmail(ctx context.Context, userID string) (string, error) {
	const op = "storage.GetUserEmail"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var email string
	err := s.DB.QueryRowContext(ctx, `SELECT email FROM users WHERE id = $1`, userID).Scan(&email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return email, nil
}
