package accesscheck

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/talent-marketplace/internal/access"
	"github.com/magabrotheeeer/talent-marketplace/internal/access/messaging"
	"github.com/magabrotheeeer/talent-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/talent-marketplace/internal/http/response"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
	"github.com/magabrotheeeer/talent-marketplace/internal/services/accesslog"
)

// ConversationRequest — тело запроса проверки доступа к переписке.
// Для initiate нужен recipient_role, для send и view — participant_ids.
type ConversationRequest struct {
	Action         string   `json:"action" validate:"required,oneof=initiate send view"`
	RecipientRole  string   `json:"recipient_role"`
	ParticipantIDs []string `json:"participant_ids"`
	ConversationID string   `json:"conversation_id"`
}

// ConversationHandler проверяет действие с диалогом.
type ConversationHandler struct {
	log      *slog.Logger
	audit    AccessLogger
	validate *validator.Validate
}

// NewConversation создает ConversationHandler.
func NewConversation(log *slog.Logger, audit AccessLogger) *ConversationHandler {
	return &ConversationHandler{
		log:      log,
		audit:    audit,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Проверить действие с диалогом
// @Tags Access
// @Accept json
// @Produce json
// @Param request body ConversationRequest true "Действие и участники диалога"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.DeniedResponse
// @Router /conversations/check [post]
func (h *ConversationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.accesscheck.Conversation"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req ConversationRequest
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

	var res models.AccessCheckResult
	switch messaging.Action(req.Action) {
	case messaging.ActionInitiate:
		role, ok := access.ParseRole(req.RecipientRole)
		if !ok {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown recipient_role"))
			return
		}
		res = fromMessaging(messaging.CanInitiateConversation(actx, role))
	case messaging.ActionSend:
		res = fromMessaging(messaging.CanSendMessage(actx, req.ParticipantIDs))
	case messaging.ActionView:
		res = messaging.CanViewConversation(actx, req.ParticipantIDs)
	}

	h.audit.Log(r.Context(), accesslog.Entry(actx, accesslog.ResourceConversation, req.ConversationID, req.Action, res))

	writeDecision(w, r, log, res)
}

func fromMessaging(m models.MessagingAccess) models.AccessCheckResult {
	return models.AccessCheckResult{
		Granted:              m.CanSend,
		Code:                 m.Code,
		Reason:               m.Reason,
		RequiresSubscription: m.RequiresSubscription,
	}
}
