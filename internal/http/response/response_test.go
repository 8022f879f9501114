package response

import (
	"testing"
	"time"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

func TestValidationError(t *testing.T) {
	type request struct {
		Action string `validate:"required,oneof=view edit"`
		Name   string `validate:"max=3"`
		Owner  string `validate:"required"`
	}

	err := validator.New().Struct(request{Action: "fly", Name: "toolong"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Action must be one of: view edit")
	assert.Contains(t, resp.Error, "field Name must be at most 3 long")
	assert.Contains(t, resp.Error, "field Owner is a required field")
}

func TestDenied(t *testing.T) {
	res := models.AccessCheckResult{
		Code:                 "subscription_required",
		Reason:               "A subscription is required to access this feature",
		RequiresSubscription: true,
	}

	resp := Denied(res)

	assert.Equal(t, DeniedResponse{
		Status:               StatusError,
		Error:                res.Reason,
		Code:                 res.Code,
		RequiresSubscription: true,
	}, resp)
}

func TestRateLimited(t *testing.T) {
	reset := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	resp := RateLimited(models.RateLimitResult{Reason: "Rate limit reached", ResetAt: &reset})

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, 0, resp.Remaining)
	assert.Equal(t, &reset, resp.ResetAt)
}

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]any{"level": "premium"})

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Equal(t, OK().Status, resp.Status)
}
