package marketplace

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/talent-marketplace/internal/config"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/jwt"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

type stubAudit struct{}

func (stubAudit) Log(context.Context, models.AccessLogEntry) {}

type stubAccessLogs struct{}

func (stubAccessLogs) ByUser(context.Context, string, int) ([]models.AccessLogEntry, error) {
	return []models.AccessLogEntry{}, nil
}

func (stubAccessLogs) ByResource(context.Context, string, string, int) ([]models.AccessLogEntry, error) {
	return []models.AccessLogEntry{}, nil
}

func (stubAccessLogs) Stats(_ context.Context, since time.Time) (models.AccessStats, error) {
	return models.AccessStats{Since: since}, nil
}

func (stubAccessLogs) Cleanup(context.Context, int) (int64, error) { return 3, nil }

type stubContactRequests struct{}

func (stubContactRequests) Create(context.Context, models.AccessContext, models.ValidationStatus, models.ContactRequestInput) (*models.ContactRequest, models.RateLimitResult, error) {
	return &models.ContactRequest{ID: "cr-1"}, models.RateLimitResult{Allowed: true, Remaining: 9}, nil
}

func (stubContactRequests) Get(context.Context, models.AccessContext, string) (*models.ContactRequest, models.ContactRequestAccess, error) {
	return &models.ContactRequest{ID: "cr-1"}, models.ContactRequestAccess{CanView: true}, nil
}

func (stubContactRequests) Respond(context.Context, models.AccessContext, string, bool) (*models.ContactRequest, error) {
	return &models.ContactRequest{ID: "cr-1"}, nil
}

type stubNotifications struct{}

func (stubNotifications) List(context.Context, models.AccessContext, bool, int, int) ([]models.Notification, error) {
	return []models.Notification{}, nil
}

func (stubNotifications) MarkRead(context.Context, models.AccessContext, string) error { return nil }

func (stubNotifications) PreferencesFor(context.Context, models.AccessContext, string) (models.NotificationPreferences, error) {
	return models.NotificationPreferences{}, nil
}

func (stubNotifications) UpdatePreferences(context.Context, models.AccessContext, string, models.NotificationPreferences) error {
	return nil
}

type stubPinger struct{}

func (stubPinger) PingContext(context.Context) error { return nil }

func TestRegisterRoutes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	maker := jwt.NewJWTMaker("routes-secret", time.Hour)

	token := func(role string) string {
		tok, err := maker.GenerateToken(jwt.Identity{UserUID: "u-" + role, Role: role, SubscriptionStatus: "ACTIVE"})
		require.NoError(t, err)
		return "Bearer " + tok
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, config.HTTPServer{RequestsPerSecond: 1000, Burst: 1000}, Deps{
		Tokens:          maker,
		Audit:           stubAudit{},
		AccessLogs:      stubAccessLogs{},
		ContactRequests: stubContactRequests{},
		Notifications:   stubNotifications{},
		DB:              stubPinger{},
	})

	tests := []struct {
		name           string
		method         string
		path           string
		auth           string
		expectedStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/health", expectedStatus: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", expectedStatus: http.StatusOK},
		{name: "anonymous access level", method: http.MethodGet, path: "/api/v1/access/me", expectedStatus: http.StatusOK},
		{name: "broken token", method: http.MethodGet, path: "/api/v1/access/me", auth: "Bearer nope", expectedStatus: http.StatusUnauthorized},
		{name: "anonymous notifications", method: http.MethodGet, path: "/api/v1/notifications", expectedStatus: http.StatusUnauthorized},
		{name: "talent notifications", method: http.MethodGet, path: "/api/v1/notifications", auth: token("TALENT"), expectedStatus: http.StatusOK},
		{name: "talent contact request", method: http.MethodGet, path: "/api/v1/contact-requests/cr-1", auth: token("TALENT"), expectedStatus: http.StatusOK},
		{name: "talent on admin route", method: http.MethodGet, path: "/api/v1/admin/access-logs/stats", auth: token("TALENT"), expectedStatus: http.StatusForbidden},
		{name: "admin stats", method: http.MethodGet, path: "/api/v1/admin/access-logs/stats", auth: token("ADMIN"), expectedStatus: http.StatusOK},
		{name: "admin by resource", method: http.MethodGet, path: "/api/v1/admin/access-logs/resources/collection/c-1", auth: token("ADMIN"), expectedStatus: http.StatusOK},
		{name: "admin cleanup", method: http.MethodDelete, path: "/api/v1/admin/access-logs/", auth: token("ADMIN"), expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}
