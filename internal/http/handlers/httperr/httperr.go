// Package httperr переводит ошибки сервисов в HTTP-ответы.
package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/talent-marketplace/internal/access"
	"github.com/magabrotheeeer/talent-marketplace/internal/http/response"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/talent-marketplace/internal/services/contactrequest"
	"github.com/magabrotheeeer/talent-marketplace/internal/storage"
)

// Write пишет ответ для err. Отказ в доступе даёт 403 (401 для анонимного
// пользователя), исчерпанный лимит 429, ошибка ввода 400, отсутствующая
// запись 404. Остальные ошибки логируются и отдаются как 500 с текстом msg.
func Write(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, msg string) {
	var (
		denied    *access.DeniedError
		limited   *contactrequest.RateLimitError
		invalidIn *contactrequest.ValidationError
	)

	switch {
	case errors.As(err, &denied):
		status := http.StatusForbidden
		if denied.Result.Code == access.ReasonSignInRequired.String() {
			status = http.StatusUnauthorized
		}
		log.Info("access denied", slog.String("code", denied.Result.Code))
		render.Status(r, status)
		render.JSON(w, r, response.Denied(denied.Result))
	case errors.As(err, &limited):
		log.Info("contact request rate limit reached", slog.Int("remaining", limited.Result.Remaining))
		render.Status(r, http.StatusTooManyRequests)
		render.JSON(w, r, response.RateLimited(limited.Result))
	case errors.As(err, &invalidIn):
		log.Info("invalid input", slog.String("reason", invalidIn.Reason))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(invalidIn.Reason))
	case errors.Is(err, storage.ErrNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("not found"))
	default:
		log.Error(msg, sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(msg))
	}
}
