// Package contactrequest реализует запросы на контакт с талантами:
// проверка прав, журнал, сохранение и уведомление второй стороны.
package contactrequest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/talent-marketplace/internal/access"
	"github.com/magabrotheeeer/talent-marketplace/internal/access/contactrequests"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
	"github.com/magabrotheeeer/talent-marketplace/internal/services/accesslog"
	"github.com/magabrotheeeer/talent-marketplace/internal/services/notification"
	"github.com/magabrotheeeer/talent-marketplace/internal/storage"
)

// Действия в журнале.
const (
	ActionCreate  = "create"
	ActionView    = "view"
	ActionRespond = "respond"
)

// Repository определяет методы хранилища запросов.
type Repository interface {
	CreateContactRequest(ctx context.Context, r models.ContactRequest) error
	GetContactRequest(ctx context.Context, id string) (*models.ContactRequest, error)
	RespondContactRequest(ctx context.Context, id string, status models.ContactRequestStatus, at time.Time) error
	PendingContactRequestStats(ctx context.Context, requesterID string, since time.Time) (int, *time.Time, error)
}

// Notifier отправляет уведомления.
type Notifier interface {
	Notify(ctx context.Context, in notification.Input) (*models.Notification, error)
}

// AccessLogger пишет решения в журнал.
type AccessLogger interface {
	Log(ctx context.Context, entry models.AccessLogEntry)
}

// Service реализует сценарии запросов на контакт.
type Service struct {
	repo     Repository
	notifier Notifier
	audit    AccessLogger
	log      *slog.Logger
	now      func() time.Time
}

// NewService создает сервис запросов на контакт.
func NewService(repo Repository, notifier Notifier, audit AccessLogger, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

// Create создаёт запрос от имени вызывающего. validation — статус проверки
// аккаунта отправителя. Возвращает сохранённый запрос и остаток лимита.
func (s *Service) Create(ctx context.Context, actx models.AccessContext, validation models.ValidationStatus, in models.ContactRequestInput) (*models.ContactRequest, models.RateLimitResult, error) {
	const op = "contactrequest.Create"

	decision := contactrequests.CanCreateContactRequest(actx, validation)
	s.audit.Log(ctx, accesslog.Entry(actx, accesslog.ResourceContactRequest, in.TalentUserID, ActionCreate, decision))
	if !decision.Granted {
		return nil, models.RateLimitResult{}, access.Denied(decision)
	}

	if v := contactrequests.ValidateContactRequestInput(actx.UserID, in); !v.Valid {
		return nil, models.RateLimitResult{}, &ValidationError{Reason: v.Reason}
	}

	now := s.now().UTC()
	count, oldest, err := s.repo.PendingContactRequestStats(ctx, actx.UserID, now.Add(-contactrequests.RateLimitWindow))
	if err != nil {
		return nil, models.RateLimitResult{}, fmt.Errorf("%s: %w", op, err)
	}
	limit := contactrequests.CheckRateLimit(count, oldest)
	if !limit.Allowed {
		s.audit.Log(ctx, models.AccessLogEntry{
			UserID:       actx.UserID,
			ResourceType: accesslog.ResourceContactRequest,
			ResourceID:   in.TalentUserID,
			Action:       ActionCreate,
			Granted:      false,
			Reason:       limit.Reason,
		})
		return nil, limit, &RateLimitError{Result: limit}
	}

	req := models.ContactRequest{
		ID:           uuid.NewString(),
		RequesterID:  actx.UserID,
		TalentUserID: strings.TrimSpace(in.TalentUserID),
		ProjectName:  strings.TrimSpace(in.ProjectName),
		Purpose:      strings.TrimSpace(in.Purpose),
		Message:      strings.TrimSpace(in.Message),
		Status:       models.ContactRequestPending,
		CreatedAt:    now,
	}
	if err := s.repo.CreateContactRequest(ctx, req); err != nil {
		return nil, models.RateLimitResult{}, fmt.Errorf("%s: %w", op, err)
	}
	limit.Remaining = max(0, limit.Remaining-1)

	s.notify(ctx, notification.Input{
		UserID: req.TalentUserID,
		Type:   models.NotificationContactRequest,
		Title:  "New contact request",
		Body:   contactRequestBody(req),
		Link:   "/contact-requests/" + req.ID,
	})
	return &req, limit, nil
}

// Get возвращает запрос и права вызывающего на него.
func (s *Service) Get(ctx context.Context, actx models.AccessContext, id string) (*models.ContactRequest, models.ContactRequestAccess, error) {
	const op = "contactrequest.Get"

	req, err := s.repo.GetContactRequest(ctx, id)
	if err != nil {
		return nil, models.ContactRequestAccess{}, fmt.Errorf("%s: %w", op, err)
	}

	acc := contactrequests.CanViewContactRequest(actx, *req)
	s.audit.Log(ctx, models.AccessLogEntry{
		UserID:       actx.UserID,
		ResourceType: accesslog.ResourceContactRequest,
		ResourceID:   id,
		Action:       ActionView,
		Granted:      acc.CanView,
		Reason:       acc.Reason,
	})
	if !acc.CanView {
		return nil, acc, access.Denied(access.Deny(access.ReasonCode(acc.Code)))
	}
	return req, acc, nil
}

// Respond принимает или отклоняет запрос от имени таланта.
func (s *Service) Respond(ctx context.Context, actx models.AccessContext, id string, approve bool) (*models.ContactRequest, error) {
	const op = "contactrequest.Respond"

	req, err := s.repo.GetContactRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	decision := contactrequests.CanRespondToContactRequest(actx, *req)
	s.audit.Log(ctx, accesslog.Entry(actx, accesslog.ResourceContactRequest, id, ActionRespond, decision))
	if !decision.Granted {
		return nil, access.Denied(decision)
	}

	status := models.ContactRequestDeclined
	if approve {
		status = models.ContactRequestApproved
	}
	now := s.now().UTC()
	if err := s.repo.RespondContactRequest(ctx, id, status, now); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, access.Denied(access.Deny(access.ReasonAlreadyResponded))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated := *req
	updated.Status = status
	updated.RespondedAt = &now

	s.notify(ctx, notification.Input{
		UserID: req.RequesterID,
		Type:   models.NotificationContactRequestResponse,
		Title:  "Contact request " + strings.ToLower(string(status)),
		Body:   fmt.Sprintf("Your contact request for %q was %s.", displayProject(req.ProjectName), strings.ToLower(string(status))),
		Link:   "/contact-requests/" + req.ID,
	})
	return &updated, nil
}

func (s *Service) notify(ctx context.Context, in notification.Input) {
	if _, err := s.notifier.Notify(ctx, in); err != nil {
		s.log.Error("failed to notify",
			slog.String("user_id", in.UserID),
			slog.String("type", string(in.Type)),
			sl.Err(err))
	}
}

func contactRequestBody(r models.ContactRequest) string {
	return fmt.Sprintf("You received a contact request for %q.\n\n%s", displayProject(r.ProjectName), r.Purpose)
}

func displayProject(name string) string {
	if name == "" {
		return "a project"
	}
	return name
}
