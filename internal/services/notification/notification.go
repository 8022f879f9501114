// Package notification создаёт уведомления и ставит письма в очередь с
// учётом настроек пользователя.
package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/talent-marketplace/internal/access"
	"github.com/magabrotheeeer/talent-marketplace/internal/access/notifications"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/talent-marketplace/internal/metrics"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
	"github.com/magabrotheeeer/talent-marketplace/internal/storage"
)

// Repository определяет методы хранилища уведомлений.
type Repository interface {
	CreateNotification(ctx context.Context, n models.Notification) error
	GetNotification(ctx context.Context, id string) (*models.Notification, error)
	ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	GetPreferences(ctx context.Context, userID string) (models.NotificationPreferences, error)
	UpsertPreferences(ctx context.Context, userID string, prefs models.NotificationPreferences) error
	RecordEmailSent(ctx context.Context, userID string, typ models.NotificationType, at time.Time) error
	GetUserEmail(ctx context.Context, userID string) (string, error)
}

// PreferencesCache кеширует настройки уведомлений.
type PreferencesCache interface {
	GetPreferences(ctx context.Context, userID string) (models.NotificationPreferences, bool, error)
	SetPreferences(ctx context.Context, userID string, prefs models.NotificationPreferences) error
	InvalidatePreferences(ctx context.Context, userID string) error
}

// Publisher публикует задания в брокер.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Input — данные нового уведомления.
type Input struct {
	UserID string
	Type   models.NotificationType
	Title  string
	Body   string
	Link   string
}

// Service реализует создание и чтение уведомлений.
type Service struct {
	repo      Repository
	cache     PreferencesCache
	publisher Publisher
	log       *slog.Logger
	now       func() time.Time
}

// NewService создает сервис уведомлений.
func NewService(repo Repository, cache PreferencesCache, publisher Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Notify создаёт уведомление внутри приложения и, если разрешено, ставит
// письмо в очередь. Возвращает nil уведомление, если канал в приложении
// выключен. Сбой отправки письма не отменяет созданное уведомление.
func (s *Service) Notify(ctx context.Context, in Input) (*models.Notification, error) {
	const op = "notification.Notify"
	log := s.log.With(slog.String("op", op), slog.String("user_id", in.UserID), slog.String("type", string(in.Type)))

	prefs, cached, err := s.preferences(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	now := s.now().UTC()

	var created *models.Notification
	if notifications.ShouldSendInAppNotification(&prefs, in.Type) {
		n := models.Notification{
			ID:        uuid.NewString(),
			UserID:    in.UserID,
			Type:      in.Type,
			Title:     in.Title,
			Body:      in.Body,
			Link:      in.Link,
			CreatedAt: now,
		}
		if err := s.repo.CreateNotification(ctx, n); err != nil {
			metrics.NotificationsTotal.WithLabelValues("in_app", "failed").Inc()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		metrics.NotificationsTotal.WithLabelValues("in_app", "sent").Inc()
		created = &n
	} else {
		metrics.NotificationsTotal.WithLabelValues("in_app", "skipped").Inc()
	}

	decision := notifications.ShouldSendEmailNotification(&prefs, in.Type, now)
	if decision.Send && cached {
		// Кеш мог быть заполнен до записи последнего письма, поэтому
		// ограничение частоты проверяется по базе.
		fresh, err := s.repo.GetPreferences(ctx, in.UserID)
		if err != nil {
			metrics.NotificationsTotal.WithLabelValues("email", "failed").Inc()
			log.Error("failed to load preferences for email rate limit", sl.Err(err))
			return created, nil
		}
		decision = notifications.ShouldSendEmailNotification(&fresh, in.Type, now)
	}
	if !decision.Send {
		metrics.NotificationsTotal.WithLabelValues("email", "skipped").Inc()
		log.Debug("email skipped", slog.String("reason", decision.Reason))
		return created, nil
	}

	if err := s.enqueueEmail(ctx, in, created, now); err != nil {
		metrics.NotificationsTotal.WithLabelValues("email", "failed").Inc()
		log.Error("failed to enqueue email", sl.Err(err))
		return created, nil
	}
	metrics.NotificationsTotal.WithLabelValues("email", "sent").Inc()
	return created, nil
}

func (s *Service) enqueueEmail(ctx context.Context, in Input, created *models.Notification, now time.Time) error {
	email, err := s.repo.GetUserEmail(ctx, in.UserID)
	if err != nil {
		return err
	}
	job := models.EmailJob{
		UserID:  in.UserID,
		Email:   email,
		Type:    in.Type,
		Subject: in.Title,
		Body:    in.Body,
	}
	if created != nil {
		job.NotificationID = created.ID
	}
	if err := s.publisher.Publish(ctx, rabbitmq.EmailRoutingKey, job); err != nil {
		return err
	}

	if err := s.repo.RecordEmailSent(ctx, in.UserID, in.Type, now); err != nil {
		s.log.Error("failed to record email timestamp", slog.String("user_id", in.UserID), sl.Err(err))
	}
	s.invalidate(ctx, in.UserID)
	return nil
}

// Preferences возвращает настройки пользователя, сначала из кеша.
func (s *Service) Preferences(ctx context.Context, userID string) (models.NotificationPreferences, error) {
	prefs, _, err := s.preferences(ctx, userID)
	return prefs, err
}

// preferences дополнительно сообщает, пришли ли настройки из кеша.
func (s *Service) preferences(ctx context.Context, userID string) (models.NotificationPreferences, bool, error) {
	const op = "notification.Preferences"
	prefs, found, err := s.cache.GetPreferences(ctx, userID)
	if err != nil {
		s.log.Warn("preferences cache read failed", slog.String("user_id", userID), sl.Err(err))
	}
	if found {
		return prefs, true, nil
	}

	prefs, err = s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return models.NotificationPreferences{}, false, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.SetPreferences(ctx, userID, prefs); err != nil {
		s.log.Warn("preferences cache write failed", slog.String("user_id", userID), sl.Err(err))
	}
	return prefs, false, nil
}

// PreferencesFor возвращает настройки ownerID, если вызывающий вправе ими управлять.
func (s *Service) PreferencesFor(ctx context.Context, actx models.AccessContext, ownerID string) (models.NotificationPreferences, error) {
	if res := notifications.CanManagePreferences(actx, ownerID); !res.Granted {
		return models.NotificationPreferences{}, access.Denied(res)
	}
	return s.Preferences(ctx, ownerID)
}

// UpdatePreferences сохраняет настройки ownerID и сбрасывает кеш.
func (s *Service) UpdatePreferences(ctx context.Context, actx models.AccessContext, ownerID string, prefs models.NotificationPreferences) error {
	const op = "notification.UpdatePreferences"
	if res := notifications.CanManagePreferences(actx, ownerID); !res.Granted {
		return access.Denied(res)
	}
	if err := s.repo.UpsertPreferences(ctx, ownerID, prefs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, ownerID)
	return nil
}

// List возвращает уведомления вызывающего пользователя.
func (s *Service) List(ctx context.Context, actx models.AccessContext, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	const op = "notification.List"
	if !actx.IsAuthenticated() {
		return nil, access.Denied(access.SignInRequired())
	}
	list, err := s.repo.ListNotifications(ctx, actx.UserID, unreadOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// MarkRead помечает уведомление прочитанным. Возвращает storage.ErrNotFound,
// если уведомления нет.
func (s *Service) MarkRead(ctx context.Context, actx models.AccessContext, id string) error {
	const op = "notification.MarkRead"
	if !actx.IsAuthenticated() {
		return access.Denied(access.SignInRequired())
	}
	n, err := s.repo.GetNotification(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res := notifications.CanViewNotification(actx, n.UserID); !res.Granted {
		return access.Denied(res)
	}
	if n.Read {
		return nil
	}
	if err := s.repo.MarkNotificationRead(ctx, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if err := s.cache.InvalidatePreferences(ctx, userID); err != nil {
		s.log.Warn("preferences cache invalidate failed", slog.String("user_id", userID), sl.Err(err))
	}
}
