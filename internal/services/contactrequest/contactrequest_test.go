package contactrequest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/talent-marketplace/internal/access"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
	"github.com/magabrotheeeer/talent-marketplace/internal/services/notification"
	"github.com/magabrotheeeer/talent-marketplace/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateContactRequest(ctx context.Context, r models.ContactRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *RepoMock) GetContactRequest(ctx context.Context, id string) (*models.ContactRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContactRequest), args.Error(1)
}

func (m *RepoMock) RespondContactRequest(ctx context.Context, id string, status models.ContactRequestStatus, at time.Time) error {
	return m.Called(ctx, id, status, at).Error(0)
}

func (m *RepoMock) PendingContactRequestStats(ctx context.Context, requesterID string, since time.Time) (int, *time.Time, error) {
	args := m.Called(ctx, requesterID, since)
	var oldest *time.Time
	if v := args.Get(1); v != nil {
		oldest = v.(*time.Time)
	}
	return args.Int(0), oldest, args.Error(2)
}

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) Notify(ctx context.Context, in notification.Input) (*models.Notification, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

// auditRecorder собирает записи журнала в памяти.
type auditRecorder struct {
	mu      sync.Mutex
	entries []models.AccessLogEntry
}

func (a *auditRecorder) Log(_ context.Context, entry models.AccessLogEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *auditRecorder) last() models.AccessLogEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.entries[len(a.entries)-1]
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixedNow = time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

func newTestService() (*Service, *RepoMock, *NotifierMock, *auditRecorder) {
	repo := new(RepoMock)
	notifier := new(NotifierMock)
	audit := &auditRecorder{}
	svc := NewService(repo, notifier, audit, newNoopLogger())
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, notifier, audit
}

var (
	proActive   = models.AccessContext{UserID: "pro-1", Role: models.RoleProfessional, SubscriptionStatus: models.SubscriptionActive}
	proNone     = models.AccessContext{UserID: "pro-2", Role: models.RoleProfessional, SubscriptionStatus: models.SubscriptionNone}
	talent      = models.AccessContext{UserID: "talent-1", Role: models.RoleTalent}
	otherTalent = models.AccessContext{UserID: "talent-2", Role: models.RoleTalent}
	admin       = models.AccessContext{UserID: "admin-1", Role: models.RoleAdmin}
)

func validInput() models.ContactRequestInput {
	return models.ContactRequestInput{
		TalentUserID: "talent-1",
		ProjectName:  "Summer campaign",
		Purpose:      strings.Repeat("p", 60),
	}
}

func TestService_Create_Success(t *testing.T) {
	ctx := context.Background()
	svc, repo, notifier, audit := newTestService()

	repo.On("PendingContactRequestStats", ctx, "pro-1", fixedNow.Add(-24*time.Hour)).Return(3, nil, nil)
	repo.On("CreateContactRequest", ctx, mock.MatchedBy(func(r models.ContactRequest) bool {
		return r.RequesterID == "pro-1" && r.TalentUserID == "talent-1" &&
			r.Status == models.ContactRequestPending && r.CreatedAt.Equal(fixedNow) && r.ID != ""
	})).Return(nil)
	notifier.On("Notify", ctx, mock.MatchedBy(func(in notification.Input) bool {
		return in.UserID == "talent-1" && in.Type == models.NotificationContactRequest
	})).Return(&models.Notification{ID: "n1"}, nil)

	req, limit, err := svc.Create(ctx, proActive, models.ValidationApproved, validInput())
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.True(t, limit.Allowed)
	assert.Equal(t, 6, limit.Remaining)
	assert.True(t, audit.last().Granted)

	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestService_Create_Denied(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		actx       models.AccessContext
		validation models.ValidationStatus
		wantReason string
	}{
		{name: "talent", actx: talent, validation: models.ValidationApproved, wantReason: "Only professionals and companies"},
		{name: "no subscription", actx: proNone, validation: models.ValidationApproved, wantReason: "subscription is required"},
		{name: "pending validation", actx: proActive, validation: models.ValidationPending, wantReason: "pending validation"},
		{name: "anonymous", actx: models.AccessContext{Role: models.RoleVisitor}, validation: models.ValidationApproved, wantReason: "sign in"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, notifier, audit := newTestService()

			_, _, err := svc.Create(ctx, tt.actx, tt.validation, validInput())

			var denied *access.DeniedError
			require.ErrorAs(t, err, &denied)
			assert.Contains(t, denied.Result.Reason, tt.wantReason)
			require.Len(t, audit.entries, 1)
			assert.False(t, audit.last().Granted)
			repo.AssertNotCalled(t, "CreateContactRequest", mock.Anything, mock.Anything)
			notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Create_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := newTestService()

	in := validInput()
	in.Purpose = "too short"
	_, _, err := svc.Create(ctx, proActive, models.ValidationApproved, in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "at least 50 characters")
	repo.AssertNotCalled(t, "PendingContactRequestStats", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Create_RateLimited(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, audit := newTestService()
	oldest := fixedNow.Add(-20 * time.Hour)
	repo.On("PendingContactRequestStats", ctx, "pro-1", mock.Anything).Return(10, &oldest, nil)

	_, limit, err := svc.Create(ctx, proActive, models.ValidationApproved, validInput())

	var rl *RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.False(t, limit.Allowed)
	assert.Zero(t, limit.Remaining)
	require.NotNil(t, limit.ResetAt)
	assert.Equal(t, oldest.Add(24*time.Hour), *limit.ResetAt)
	assert.Contains(t, rl.Error(), "Rate limit reached")
	assert.False(t, audit.last().Granted)
	repo.AssertNotCalled(t, "CreateContactRequest", mock.Anything, mock.Anything)
}

func TestService_Create_NotifyFailureIsIgnored(t *testing.T) {
	ctx := context.Background()
	svc, repo, notifier, _ := newTestService()
	repo.On("PendingContactRequestStats", ctx, "pro-1", mock.Anything).Return(0, nil, nil)
	repo.On("CreateContactRequest", ctx, mock.Anything).Return(nil)
	notifier.On("Notify", ctx, mock.Anything).Return(nil, errors.New("db down"))

	req, _, err := svc.Create(ctx, proActive, models.ValidationApproved, validInput())
	require.NoError(t, err)
	assert.NotNil(t, req)
}

func TestService_Create_RepoErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("stats", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("PendingContactRequestStats", ctx, "pro-1", mock.Anything).Return(0, nil, errors.New("boom"))
		_, _, err := svc.Create(ctx, proActive, models.ValidationApproved, validInput())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "contactrequest.Create")
	})

	t.Run("insert", func(t *testing.T) {
		svc, repo, notifier, _ := newTestService()
		repo.On("PendingContactRequestStats", ctx, "pro-1", mock.Anything).Return(0, nil, nil)
		repo.On("CreateContactRequest", ctx, mock.Anything).Return(errors.New("boom"))
		_, _, err := svc.Create(ctx, proActive, models.ValidationApproved, validInput())
		require.Error(t, err)
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})
}

func pendingRequest() *models.ContactRequest {
	return &models.ContactRequest{
		ID:           "cr-1",
		RequesterID:  "pro-1",
		TalentUserID: "talent-1",
		Purpose:      strings.Repeat("p", 60),
		Status:       models.ContactRequestPending,
		CreatedAt:    fixedNow.Add(-time.Hour),
	}
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		actx        models.AccessContext
		wantView    bool
		wantRespond bool
	}{
		{name: "requester", actx: proActive, wantView: true},
		{name: "talent", actx: talent, wantView: true, wantRespond: true},
		{name: "admin", actx: admin, wantView: true},
		{name: "other talent", actx: otherTalent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, audit := newTestService()
			repo.On("GetContactRequest", ctx, "cr-1").Return(pendingRequest(), nil)

			req, acc, err := svc.Get(ctx, tt.actx, "cr-1")
			assert.Equal(t, tt.wantView, acc.CanView)
			assert.Equal(t, tt.wantRespond, acc.CanRespond)
			assert.Equal(t, tt.wantView, audit.last().Granted)
			if tt.wantView {
				require.NoError(t, err)
				assert.Equal(t, "cr-1", req.ID)
				return
			}
			var denied *access.DeniedError
			require.ErrorAs(t, err, &denied)
			assert.Nil(t, req)
		})
	}
}

func TestService_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, audit := newTestService()
	repo.On("GetContactRequest", ctx, "missing").Return(nil, storage.ErrNotFound)

	_, _, err := svc.Get(ctx, talent, "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
	assert.Empty(t, audit.entries)
}

func TestService_Respond(t *testing.T) {
	ctx := context.Background()

	t.Run("talent approves", func(t *testing.T) {
		svc, repo, notifier, _ := newTestService()
		repo.On("GetContactRequest", ctx, "cr-1").Return(pendingRequest(), nil)
		repo.On("RespondContactRequest", ctx, "cr-1", models.ContactRequestApproved, fixedNow).Return(nil)
		notifier.On("Notify", ctx, mock.MatchedBy(func(in notification.Input) bool {
			return in.UserID == "pro-1" && in.Type == models.NotificationContactRequestResponse
		})).Return(&models.Notification{}, nil)

		got, err := svc.Respond(ctx, talent, "cr-1", true)
		require.NoError(t, err)
		assert.Equal(t, models.ContactRequestApproved, got.Status)
		require.NotNil(t, got.RespondedAt)
		notifier.AssertExpectations(t)
	})

	t.Run("talent declines", func(t *testing.T) {
		svc, repo, notifier, _ := newTestService()
		repo.On("GetContactRequest", ctx, "cr-1").Return(pendingRequest(), nil)
		repo.On("RespondContactRequest", ctx, "cr-1", models.ContactRequestDeclined, fixedNow).Return(nil)
		notifier.On("Notify", ctx, mock.Anything).Return(&models.Notification{}, nil)

		got, err := svc.Respond(ctx, talent, "cr-1", false)
		require.NoError(t, err)
		assert.Equal(t, models.ContactRequestDeclined, got.Status)
	})

	t.Run("already responded wins over identity", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		req := pendingRequest()
		req.Status = models.ContactRequestApproved
		repo.On("GetContactRequest", ctx, "cr-1").Return(req, nil)

		_, err := svc.Respond(ctx, otherTalent, "cr-1", true)
		var denied *access.DeniedError
		require.ErrorAs(t, err, &denied)
		assert.Contains(t, denied.Result.Reason, "already been responded")
	})

	t.Run("requester cannot respond", func(t *testing.T) {
		svc, repo, _, audit := newTestService()
		repo.On("GetContactRequest", ctx, "cr-1").Return(pendingRequest(), nil)

		_, err := svc.Respond(ctx, proActive, "cr-1", true)
		var denied *access.DeniedError
		require.ErrorAs(t, err, &denied)
		assert.Contains(t, denied.Result.Reason, "Only the talent")
		assert.False(t, audit.last().Granted)
		repo.AssertNotCalled(t, "RespondContactRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent response conflict", func(t *testing.T) {
		svc, repo, notifier, _ := newTestService()
		repo.On("GetContactRequest", ctx, "cr-1").Return(pendingRequest(), nil)
		repo.On("RespondContactRequest", ctx, "cr-1", models.ContactRequestApproved, fixedNow).Return(storage.ErrConflict)

		_, err := svc.Respond(ctx, talent, "cr-1", true)
		var denied *access.DeniedError
		require.ErrorAs(t, err, &denied)
		assert.Contains(t, denied.Result.Reason, "already been responded")
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})
}
