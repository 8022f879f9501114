package accesscheck

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/talent-marketplace/internal/access/collections"
	"github.com/magabrotheeeer/talent-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/talent-marketplace/internal/http/response"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/talent-marketplace/internal/services/accesslog"
)

// CollectionRequest — тело запроса проверки доступа к коллекции.
type CollectionRequest struct {
	Action       string `json:"action" validate:"required,oneof=create view edit delete share export"`
	OwnerID      string `json:"owner_id"`
	CollectionID string `json:"collection_id"`
}

// CollectionHandler проверяет действие над коллекцией.
type CollectionHandler struct {
	log      *slog.Logger
	audit    AccessLogger
	validate *validator.Validate
}

// NewCollection создает CollectionHandler.
func NewCollection(log *slog.Logger, audit AccessLogger) *CollectionHandler {
	return &CollectionHandler{
		log:      log,
		audit:    audit,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Проверить действие над коллекцией
// @Tags Access
// @Accept json
// @Produce json
// @Param request body CollectionRequest true "Действие и владелец коллекции"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.DeniedResponse
// @Router /collections/check [post]
func (h *CollectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.accesscheck.Collection"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req CollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	actx := middlewarectx.AccessContextFrom(r.Context())
	res := collections.Check(actx, collections.Action(req.Action), req.OwnerID)

	resourceID := req.CollectionID
	if resourceID == "" {
		resourceID = req.OwnerID
	}
	h.audit.Log(r.Context(), accesslog.Entry(actx, accesslog.ResourceCollection, resourceID, req.Action, res))

	writeDecision(w, r, log, res)
}
