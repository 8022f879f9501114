package httperr

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/talent-marketplace/internal/access"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
	"github.com/magabrotheeeer/talent-marketplace/internal/services/contactrequest"
	"github.com/magabrotheeeer/talent-marketplace/internal/storage"
)

func TestWrite(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "denied",
			err:          fmt.Errorf("wrapped: %w", access.Denied(access.Deny(access.ReasonNotParticipant))),
			expectedCode: http.StatusForbidden,
			expectedBody: `"code":"not_participant"`,
		},
		{
			name:         "anonymous",
			err:          access.Denied(access.SignInRequired()),
			expectedCode: http.StatusUnauthorized,
			expectedBody: "sign in",
		},
		{
			name:         "rate limit",
			err:          &contactrequest.RateLimitError{Result: models.RateLimitResult{Reason: "Rate limit reached"}},
			expectedCode: http.StatusTooManyRequests,
			expectedBody: "Rate limit reached",
		},
		{
			name:         "validation",
			err:          &contactrequest.ValidationError{Reason: "Purpose must be at least 50 characters"},
			expectedCode: http.StatusBadRequest,
			expectedBody: "at least 50 characters",
		},
		{
			name:         "not found",
			err:          fmt.Errorf("repo: %w", storage.ErrNotFound),
			expectedCode: http.StatusNotFound,
			expectedBody: "not found",
		},
		{
			name:         "internal",
			err:          errors.New("connection reset"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: "could not do it",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			Write(w, r, logger, tt.err, "could not do it")

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}
