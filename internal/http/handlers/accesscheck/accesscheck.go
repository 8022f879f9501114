// Package accesscheck реализует HTTP-обработчики, которые отдают клиенту
// решения о доступе: уровень доступа текущего пользователя, доступ к
// премиум-данным таланта, к коллекциям и к переписке.
//
// Каждое решение записывается в журнал доступа. Отказ возвращается со
// статусом 403 и стабильным кодом причины, разрешение — со статусом 200.
package accesscheck

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/talent-marketplace/internal/http/response"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

// AccessLogger описывает журнал решений о доступе.
type AccessLogger interface {
	Log(ctx context.Context, entry models.AccessLogEntry)
}

func writeDecision(w http.ResponseWriter, r *http.Request, log *slog.Logger, res models.AccessCheckResult) {
	if !res.Granted {
		log.Info("access denied", slog.String("code", res.Code))
		status := http.StatusForbidden
		if !hasUser(r) {
			status = http.StatusUnauthorized
		}
		render.Status(r, status)
		render.JSON(w, r, response.Denied(res))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"decision": res,
	}))
}
