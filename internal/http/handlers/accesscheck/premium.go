package accesscheck

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/talent-marketplace/internal/access"
	"github.com/magabrotheeeer/talent-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/talent-marketplace/internal/http/response"
	"github.com/magabrotheeeer/talent-marketplace/internal/services/accesslog"
)

// PremiumHandler проверяет доступ к премиум-данным таланта.
type PremiumHandler struct {
	log   *slog.Logger
	audit AccessLogger
}

// NewPremium создает PremiumHandler.
func NewPremium(log *slog.Logger, audit AccessLogger) *PremiumHandler {
	return &PremiumHandler{log: log, audit: audit}
}

// ServeHTTP godoc
// @Summary Доступ к премиум-данным таланта
// @Tags Access
// @Produce json
// @Param id path string true "ID таланта"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.DeniedResponse
// @Failure 403 {object} response.DeniedResponse
// @Router /talents/{id}/premium [get]
func (h *PremiumHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.accesscheck.Premium"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	talentID := chi.URLParam(r, "id")
	if talentID == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("talent id is required"))
		return
	}

	actx := middlewarectx.AccessContextFrom(r.Context())
	res := access.CanAccessTalentPremiumData(actx, talentID)
	h.audit.Log(r.Context(), accesslog.Entry(actx, accesslog.ResourceTalentPremium, talentID, "view", res))

	writeDecision(w, r, log, res)
}
