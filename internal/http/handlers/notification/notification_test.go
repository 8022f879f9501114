package notification

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/talent-marketplace/internal/access"
	"github.com/magabrotheeeer/talent-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
	"github.com/magabrotheeeer/talent-marketplace/internal/storage"
)

// MockService реализует интерфейс notification.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, actx models.AccessContext, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	args := m.Called(ctx, actx, unreadOnly, limit, offset)
	list, _ := args.Get(0).([]models.Notification)
	return list, args.Error(1)
}

func (m *MockService) MarkRead(ctx context.Context, actx models.AccessContext, id string) error {
	return m.Called(ctx, actx, id).Error(0)
}

func (m *MockService) PreferencesFor(ctx context.Context, actx models.AccessContext, ownerID string) (models.NotificationPreferences, error) {
	args := m.Called(ctx, actx, ownerID)
	return args.Get(0).(models.NotificationPreferences), args.Error(1)
}

func (m *MockService) UpdatePreferences(ctx context.Context, actx models.AccessContext, ownerID string, prefs models.NotificationPreferences) error {
	return m.Called(ctx, actx, ownerID, prefs).Error(0)
}

var user = models.AccessContext{UserID: "user-1", Role: models.RoleTalent, SubscriptionStatus: models.SubscriptionNone}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRequest(method, target, id, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rctx := chi.NewRouteContext()
	if id != "" {
		rctx.URLParams.Add("id", id)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	return req.WithContext(middlewarectx.WithAccessContext(ctx, user, ""))
}

func TestList(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "defaults",
			target: "/notifications",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, user, false, defaultLimit, 0).
					Return([]models.Notification{{ID: "n-1", Title: "New contact request"}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"New contact request"`,
		},
		{
			name:   "unread with clamped limit",
			target: "/notifications?unread=true&limit=1000&offset=40",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, user, true, maxLimit, 40).Return([]models.Notification{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name:           "bad limit",
			target:         "/notifications?limit=abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid limit",
		},
		{
			name:           "negative offset",
			target:         "/notifications?offset=-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid offset",
		},
		{
			name:   "service error",
			target: "/notifications",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, user, false, defaultLimit, 0).Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "could not list notifications",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			w := httptest.NewRecorder()
			New(newNoopLogger(), svc).List(w, newRequest(http.MethodGet, tt.target, "", ""))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestMarkRead(t *testing.T) {
	_, malformed := storage.ParseID("abc")
	require.Error(t, malformed)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "ok", expectedStatus: http.StatusOK},
		{name: "not found", err: storage.ErrNotFound, expectedStatus: http.StatusNotFound},
		{name: "malformed id", err: fmt.Errorf("notification.MarkRead: storage.GetNotification: %w", malformed), expectedStatus: http.StatusNotFound},
		{name: "foreign notification", err: access.Denied(access.Deny(access.ReasonNotificationNotOwner)), expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("MarkRead", mock.Anything, user, "n-1").Return(tt.err)

			w := httptest.NewRecorder()
			New(newNoopLogger(), svc).MarkRead(w, newRequest(http.MethodPost, "/notifications/n-1/read", "n-1", ""))

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestPreferences(t *testing.T) {
	off := false

	t.Run("get own", func(t *testing.T) {
		svc := new(MockService)
		svc.On("PreferencesFor", mock.Anything, user, "user-1").
			Return(models.NotificationPreferences{Channels: models.ChannelPreferences{Email: &off}}, nil)

		w := httptest.NewRecorder()
		New(newNoopLogger(), svc).GetPreferences(w, newRequest(http.MethodGet, "/notifications/preferences", "", ""))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"email":false`)
		svc.AssertExpectations(t)
	})

	t.Run("get foreign denied", func(t *testing.T) {
		svc := new(MockService)
		svc.On("PreferencesFor", mock.Anything, user, "user-2").
			Return(models.NotificationPreferences{}, access.Denied(access.Deny(access.ReasonPreferencesNotOwner)))

		w := httptest.NewRecorder()
		New(newNoopLogger(), svc).GetPreferences(w, newRequest(http.MethodGet, "/notifications/preferences?user_id=user-2", "", ""))

		assert.Equal(t, http.StatusForbidden, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("update drops client send marks", func(t *testing.T) {
		svc := new(MockService)
		svc.On("UpdatePreferences", mock.Anything, user, "user-1", mock.MatchedBy(func(p models.NotificationPreferences) bool {
			return p.LastEmailSentAt == nil && p.Channels.Email != nil && !*p.Channels.Email
		})).Return(nil)

		body := `{"channels":{"email":false},"lastEmailSentAt":{"MESSAGE":"` + time.Now().UTC().Format(time.RFC3339) + `"}}`
		w := httptest.NewRecorder()
		New(newNoopLogger(), svc).UpdatePreferences(w, newRequest(http.MethodPut, "/notifications/preferences", "", body))

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("update bad body", func(t *testing.T) {
		svc := new(MockService)

		w := httptest.NewRecorder()
		New(newNoopLogger(), svc).UpdatePreferences(w, newRequest(http.MethodPut, "/notifications/preferences", "", "nope"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
