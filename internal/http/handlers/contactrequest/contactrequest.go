// Package contactrequest реализует HTTP-обработчики запросов на контакт с
// талантами: создание, просмотр и ответ таланта.
//
// Решения о доступе, проверку ввода и дневной лимит выполняет сервис.
// Обработчики только разбирают запрос и переводят ошибки в HTTP-статусы.
package contactrequest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/talent-marketplace/internal/http/handlers/httperr"
	"github.com/magabrotheeeer/talent-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/talent-marketplace/internal/http/response"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

// Service описывает бизнес-логику запросов на контакт.
type Service interface {
	Create(ctx context.Context, actx models.AccessContext, validation models.ValidationStatus, in models.ContactRequestInput) (*models.ContactRequest, models.RateLimitResult, error)
	Get(ctx context.Context, actx models.AccessContext, id string) (*models.ContactRequest, models.ContactRequestAccess, error)
	Respond(ctx context.Context, actx models.AccessContext, id string, approve bool) (*models.ContactRequest, error)
}

// RespondRequest — тело ответа таланта на запрос.
type RespondRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve decline"`
}

// Handler обрабатывает запросы на контакт.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// Create godoc
// @Summary Отправить запрос на контакт
// @Description Доступно профессионалам и компаниям с подпиской и одобренным аккаунтом.
// @Tags ContactRequests
// @Accept json
// @Produce json
// @Param request body models.ContactRequestInput true "Запрос на контакт"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.DeniedResponse
// @Failure 429 {object} response.RateLimitedResponse
// @Router /contact-requests [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.contactrequest.Create")

	var in models.ContactRequestInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(in); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	actx := middlewarectx.AccessContextFrom(r.Context())
	vs := middlewarectx.ValidationStatusFrom(r.Context())

	req, limit, err := h.service.Create(r.Context(), actx, vs, in)
	if err != nil {
		httperr.Write(w, r, log, err, "could not create contact request")
		return
	}

	log.Info("contact request created", slog.String("id", req.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contact_request": req,
		"remaining":       limit.Remaining,
	}))
}

// Get godoc
// @Summary Получить запрос на контакт
// @Tags ContactRequests
// @Produce json
// @Param id path string true "ID запроса"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.DeniedResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /contact-requests/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.contactrequest.Get")

	id := chi.URLParam(r, "id")
	actx := middlewarectx.AccessContextFrom(r.Context())

	req, acc, err := h.service.Get(r.Context(), actx, id)
	if err != nil {
		httperr.Write(w, r, log, err, "could not read contact request")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contact_request": req,
		"access":          acc,
	}))
}

// Respond godoc
// @Summary Ответить на запрос на контакт
// @Description Отвечает только талант-адресат и только на ожидающий запрос.
// @Tags ContactRequests
// @Accept json
// @Produce json
// @Param id path string true "ID запроса"
// @Param request body RespondRequest true "approve или decline"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.DeniedResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /contact-requests/{id}/respond [post]
func (h *Handler) Respond(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.contactrequest.Respond")

	var body RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(body); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id := chi.URLParam(r, "id")
	actx := middlewarectx.AccessContextFrom(r.Context())

	req, err := h.service.Respond(r.Context(), actx, id, body.Decision == "approve")
	if err != nil {
		httperr.Write(w, r, log, err, "could not respond to contact request")
		return
	}

	log.Info("contact request answered", slog.String("id", id), slog.String("status", string(req.Status)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contact_request": req,
	}))
}
