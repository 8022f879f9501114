// Package middlewarectx содержит HTTP middleware маркетплейса.
//
// Auth разбирает JWT из заголовка Authorization и кладёт в контекст
// нормализованный контекст доступа. Запрос без токена считается анонимным
// и идёт дальше: решение об отказе принимают проверки доступа. Запрос с
// недействительным токеном получает 401 Unauthorized.
package middlewarectx

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/talent-marketplace/internal/access"
	"github.com/magabrotheeeer/talent-marketplace/internal/http/response"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/jwt"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

// TokenParser описывает разбор JWT токена сессии.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.CustomClaims, error)
}

const bearerPrefix = "Bearer "

// Auth возвращает middleware, который строит контекст доступа из JWT.
func Auth(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Auth"

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				ctx := WithAccessContext(r.Context(), access.AnonymousContext(), "")
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, bearerPrefix) {
				log.Warn("invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}

			claims, err := parser.ParseToken(strings.TrimPrefix(authHeader, bearerPrefix))
			if err != nil {
				log.Warn("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			id := claims.Identity()
			actx := access.BuildContext(access.Session{
				UserID:             id.UserUID,
				Role:               id.Role,
				SubscriptionStatus: id.SubscriptionStatus,
				SubscriptionEndsAt: id.SubscriptionEndsAt,
			})
			vs := models.ValidationStatus(strings.ToUpper(id.ValidationStatus))

			next.ServeHTTP(w, r.WithContext(WithAccessContext(r.Context(), actx, vs)))
		})
	}
}

// RequireUser пропускает только вошедших пользователей.
func RequireUser(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !AccessContextFrom(r.Context()).IsAuthenticated() {
				log.Debug("anonymous request rejected",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("path", r.URL.Path),
				)
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Denied(access.SignInRequired()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin пропускает только администраторов.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actx := AccessContextFrom(r.Context())
			if !actx.IsAuthenticated() {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Denied(access.SignInRequired()))
				return
			}
			if !access.IsAdminRole(actx.Role) {
				log.Warn("non-admin request to admin route",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("user_id", actx.UserID),
					slog.String("role", string(actx.Role)),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Denied(access.Deny(access.ReasonAccessDenied)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
