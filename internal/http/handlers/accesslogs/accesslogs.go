// Package accesslogs реализует административные HTTP-обработчики журнала
// доступа: выборки по пользователю и ресурсу, статистику и ручную очистку.
// Маршруты закрыты middleware RequireAdmin.
package accesslogs

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/talent-marketplace/internal/http/handlers/httperr"
	"github.com/magabrotheeeer/talent-marketplace/internal/http/response"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

// DefaultStatsWindow — период статистики, если since не задан.
const DefaultStatsWindow = 7 * 24 * time.Hour

// Service описывает чтение и очистку журнала доступа.
type Service interface {
	ByUser(ctx context.Context, userID string, limit int) ([]models.AccessLogEntry, error)
	ByResource(ctx context.Context, resourceType, resourceID string, limit int) ([]models.AccessLogEntry, error)
	Stats(ctx context.Context, since time.Time) (models.AccessStats, error)
	Cleanup(ctx context.Context, olderThanDays int) (int64, error)
}

// Handler обрабатывает административные запросы к журналу.
type Handler struct {
	log     *slog.Logger
	service Service
	now     func() time.Time
}

// New создает Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, now: time.Now}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// ByUser godoc
// @Summary Журнал доступа пользователя
// @Tags Admin
// @Produce json
// @Param id path string true "ID пользователя"
// @Param limit query int false "Количество записей (по умолчанию 50, максимум 500)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.DeniedResponse
// @Router /admin/access-logs/users/{id} [get]
func (h *Handler) ByUser(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.accesslogs.ByUser")

	limit, ok := limitParam(w, r)
	if !ok {
		return
	}
	entries, err := h.service.ByUser(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		httperr.Write(w, r, log, err, "could not read access logs")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{"entries": entries}))
}

// ByResource godoc
// @Summary Журнал доступа к ресурсу
// @Tags Admin
// @Produce json
// @Param type path string true "Тип ресурса"
// @Param id path string true "ID ресурса"
// @Param limit query int false "Количество записей (по умолчанию 50, максимум 500)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.DeniedResponse
// @Router /admin/access-logs/resources/{type}/{id} [get]
func (h *Handler) ByResource(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.accesslogs.ByResource")

	limit, ok := limitParam(w, r)
	if !ok {
		return
	}
	entries, err := h.service.ByResource(r.Context(), chi.URLParam(r, "type"), chi.URLParam(r, "id"), limit)
	if err != nil {
		httperr.Write(w, r, log, err, "could not read access logs")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{"entries": entries}))
}

// Stats godoc
// @Summary Статистика решений о доступе
// @Tags Admin
// @Produce json
// @Param since query string false "Начало периода, RFC3339 (по умолчанию 7 дней назад)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.DeniedResponse
// @Router /admin/access-logs/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.accesslogs.Stats")

	since := h.now().UTC().Add(-DefaultStatsWindow)
	if raw := r.URL.Query().Get("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("since must be an RFC3339 timestamp"))
			return
		}
		since = t
	}

	stats, err := h.service.Stats(r.Context(), since)
	if err != nil {
		httperr.Write(w, r, log, err, "could not read access log stats")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{"stats": stats}))
}

// Cleanup godoc
// @Summary Удалить старые записи журнала
// @Tags Admin
// @Produce json
// @Param older_than_days query int false "Возраст записей в днях (по умолчанию срок хранения)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.DeniedResponse
// @Router /admin/access-logs [delete]
func (h *Handler) Cleanup(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.accesslogs.Cleanup")

	days := 0
	if raw := r.URL.Query().Get("older_than_days"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("older_than_days must be a positive integer"))
			return
		}
		days = v
	}

	deleted, err := h.service.Cleanup(r.Context(), days)
	if err != nil {
		httperr.Write(w, r, log, err, "could not clean up access logs")
		return
	}
	log.Info("access logs cleaned up by admin", slog.Int64("deleted", deleted))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{"deleted": deleted}))
}

func limitParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid limit"))
		return 0, false
	}
	return v, true
}
