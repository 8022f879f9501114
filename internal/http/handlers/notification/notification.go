// Package notification реализует HTTP-обработчики уведомлений: список,
// отметку о прочтении и настройки доставки.
package notification

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/talent-marketplace/internal/http/handlers/httperr"
	"github.com/magabrotheeeer/talent-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/talent-marketplace/internal/http/response"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Service описывает бизнес-логику уведомлений.
type Service interface {
	List(ctx context.Context, actx models.AccessContext, unreadOnly bool, limit, offset int) ([]models.Notification, error)
	MarkRead(ctx context.Context, actx models.AccessContext, id string) error
	PreferencesFor(ctx context.Context, actx models.AccessContext, ownerID string) (models.NotificationPreferences, error)
	UpdatePreferences(ctx context.Context, actx models.AccessContext, ownerID string, prefs models.NotificationPreferences) error
}

// Handler обрабатывает запросы к уведомлениям текущего пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// List godoc
// @Summary Список уведомлений
// @Tags Notifications
// @Produce json
// @Param unread query bool false "Только непрочитанные"
// @Param limit query int false "Размер страницы (по умолчанию 20, максимум 100)"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /notifications [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.notification.List")

	q := r.URL.Query()
	limit, err := intParam(q.Get("limit"), defaultLimit)
	if err != nil || limit <= 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid limit"))
		return
	}
	offset, err := intParam(q.Get("offset"), 0)
	if err != nil || offset < 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid offset"))
		return
	}
	unreadOnly := q.Get("unread") == "true"

	actx := middlewarectx.AccessContextFrom(r.Context())
	list, err := h.service.List(r.Context(), actx, unreadOnly, min(limit, maxLimit), offset)
	if err != nil {
		httperr.Write(w, r, log, err, "could not list notifications")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"notifications": list,
	}))
}

// MarkRead godoc
// @Summary Отметить уведомление прочитанным
// @Tags Notifications
// @Produce json
// @Param id path string true "ID уведомления"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.DeniedResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /notifications/{id}/read [post]
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.notification.MarkRead")

	actx := middlewarectx.AccessContextFrom(r.Context())
	if err := h.service.MarkRead(r.Context(), actx, chi.URLParam(r, "id")); err != nil {
		httperr.Write(w, r, log, err, "could not mark notification as read")
		return
	}
	render.JSON(w, r, response.OK())
}

// GetPreferences godoc
// @Summary Настройки уведомлений
// @Tags Notifications
// @Produce json
// @Param user_id query string false "Владелец настроек (по умолчанию текущий пользователь)"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.DeniedResponse
// @Router /notifications/preferences [get]
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.notification.GetPreferences")

	actx := middlewarectx.AccessContextFrom(r.Context())
	owner := ownerID(r, actx)

	prefs, err := h.service.PreferencesFor(r.Context(), actx, owner)
	if err != nil {
		httperr.Write(w, r, log, err, "could not read notification preferences")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"preferences": prefs,
	}))
}

// UpdatePreferences godoc
// @Summary Изменить настройки уведомлений
// @Description Отметки об отправленных письмах клиентом не задаются и сохраняются как есть.
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body models.NotificationPreferences true "Настройки"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.DeniedResponse
// @Router /notifications/preferences [put]
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.notification.UpdatePreferences")

	var prefs models.NotificationPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	prefs.LastEmailSentAt = nil

	actx := middlewarectx.AccessContextFrom(r.Context())
	owner := ownerID(r, actx)

	if err := h.service.UpdatePreferences(r.Context(), actx, owner, prefs); err != nil {
		httperr.Write(w, r, log, err, "could not update notification preferences")
		return
	}
	log.Info("notification preferences updated", slog.String("user_id", owner))
	render.JSON(w, r, response.OK())
}

func ownerID(r *http.Request, actx models.AccessContext) string {
	if id := r.URL.Query().Get("user_id"); id != "" {
		return id
	}
	return actx.UserID
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
