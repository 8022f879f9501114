package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/talent-marketplace/internal/models"
	"github.com/magabrotheeeer/talent-marketplace/internal/storage"
)

// CreateContactRequest сохраняет новый запрос на контакт.
func (s *Storage) CreateContactRequest(ctx context.Context, r models.ContactRequest) error {
	const op = "storage.CreateContactRequest"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO contact_requests (id, requester_id, talent_user_id, project_name,
				  purpose, message, status, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.DB.ExecContext(ctx, query,
		r.ID, r.RequesterID, r.TalentUserID, r.ProjectName, r.Purpose, r.Message, string(r.Status), r.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetContactRequest возвращает запрос по id.
func (s *Storage) GetContactRequest(ctx context.Context, id string) (*models.ContactRequest, error) {
	const op = "storage.GetContactRequest"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	id, err := storage.ParseID(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT id, requester_id, talent_user_id, project_name, purpose, message,
				  status, created_at, responded_at
			  FROM contact_requests
			  WHERE id = $1`
	var r models.ContactRequest
	var respondedAt sql.NullTime
	err = s.DB.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.RequesterID, &r.TalentUserID,
		&r.ProjectName, &r.Purpose, &r.Message, &r.Status, &r.CreatedAt, &respondedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if respondedAt.Valid {
		r.RespondedAt = &respondedAt.Time
	}
	return &r, nil
}

// RespondContactRequest переводит запрос из PENDING в status. Если запрос
// уже не в PENDING, возвращает storage.ErrConflict.
func (s *Storage) RespondContactRequest(ctx context.Context, id string, status models.ContactRequestStatus, at time.Time) error {
	const op = "storage.RespondContactRequest"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	id, err := storage.ParseID(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE contact_requests SET status = $2, responded_at = $3
		 WHERE id = $1 AND status = 'PENDING'`, id, string(status), at)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrConflict)
	}
	return nil
}

// PendingContactRequestStats возвращает число ожидающих запросов пользователя,
// созданных не раньше since, и время самого старого из них.
func (s *Storage) PendingContactRequestStats(ctx context.Context, requesterID string, since time.Time) (int, *time.Time, error) {
	const op = "storage.PendingContactRequestStats"
	select {
	case <-ctx.Done():
		return 0, nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	var oldest sql.NullTime
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*), MIN(created_at)
		 FROM contact_requests
		 WHERE requester_id = $1 AND status = 'PENDING' AND created_at >= $2`,
		requesterID, since).Scan(&count, &oldest)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}
	if !oldest.Valid {
		return count, nil, nil
	}
	return count, &oldest.Time, nil
}
