package accesscheck

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/talent-marketplace/internal/access"
	"github.com/magabrotheeeer/talent-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/talent-marketplace/internal/http/response"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

// MeHandler отдаёт контекст доступа вызывающего и его уровень доступа.
type MeHandler struct {
	log *slog.Logger
}

// NewMe создает MeHandler.
func NewMe(log *slog.Logger) *MeHandler {
	return &MeHandler{log: log}
}

// ServeHTTP godoc
// @Summary Текущий уровень доступа
// @Tags Access
// @Produce json
// @Success 200 {object} response.Response
// @Router /access/me [get]
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.accesscheck.Me"
	actx := middlewarectx.AccessContextFrom(r.Context())

	h.log.Debug("access context resolved",
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("role", string(actx.Role)),
	)

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"context":      actx,
		"level":        access.GetAccessLevel(actx),
		"premium":      access.CheckPremiumAccess(actx),
		"subscription": access.GetSubscriptionDisplayInfo(actx.SubscriptionStatus),
		"validation":   validationFor(r, actx),
	}))
}

func validationFor(r *http.Request, actx models.AccessContext) models.ValidationStatus {
	if !actx.IsAuthenticated() {
		return ""
	}
	return middlewarectx.ValidationStatusFrom(r.Context())
}

func hasUser(r *http.Request) bool {
	return middlewarectx.AccessContextFrom(r.Context()).IsAuthenticated()
}
