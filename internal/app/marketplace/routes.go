// Package marketplace собирает HTTP API маркетплейса: маршруты, middleware
// и зависимости обработчиков.
package marketplace

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/talent-marketplace/internal/config"
	"github.com/magabrotheeeer/talent-marketplace/internal/http/handlers/accesscheck"
	"github.com/magabrotheeeer/talent-marketplace/internal/http/handlers/accesslogs"
	contactrequesthandler "github.com/magabrotheeeer/talent-marketplace/internal/http/handlers/contactrequest"
	"github.com/magabrotheeeer/talent-marketplace/internal/http/handlers/health"
	notificationhandler "github.com/magabrotheeeer/talent-marketplace/internal/http/handlers/notification"
	"github.com/magabrotheeeer/talent-marketplace/internal/http/middlewarectx"
)

// Deps — зависимости обработчиков.
type Deps struct {
	Tokens          middlewarectx.TokenParser
	Audit           accesscheck.AccessLogger
	AccessLogs      accesslogs.Service
	ContactRequests contactrequesthandler.Service
	Notifications   notificationhandler.Service
	DB              health.Pinger
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg config.HTTPServer, deps Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	contactRequests := contactrequesthandler.New(logger, deps.ContactRequests)
	notifications := notificationhandler.New(logger, deps.Notifications)
	accessLogs := accesslogs.New(logger, deps.AccessLogs)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(
			middlewarectx.RateLimit(logger, cfg.RequestsPerSecond, cfg.Burst),
			middlewarectx.RequestMeta,
			middlewarectx.Auth(deps.Tokens, logger),
		)

		// Проверки доступа: анонимный запрос получает отказ с причиной
		r.Get("/access/me", accesscheck.NewMe(logger).ServeHTTP)
		r.Get("/talents/{id}/premium", accesscheck.NewPremium(logger, deps.Audit).ServeHTTP)
		r.Post("/collections/check", accesscheck.NewCollection(logger, deps.Audit).ServeHTTP)
		r.Post("/conversations/check", accesscheck.NewConversation(logger, deps.Audit).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireUser(logger))

			r.Post("/contact-requests", contactRequests.Create)
			r.Get("/contact-requests/{id}", contactRequests.Get)
			r.Post("/contact-requests/{id}/respond", contactRequests.Respond)

			r.Get("/notifications", notifications.List)
			r.Get("/notifications/preferences", notifications.GetPreferences)
			r.Put("/notifications/preferences", notifications.UpdatePreferences)
			r.Post("/notifications/{id}/read", notifications.MarkRead)
		})

		r.Route("/admin/access-logs", func(r chi.Router) {
			r.Use(middlewarectx.RequireAdmin(logger))

			r.Get("/users/{id}", accessLogs.ByUser)
			r.Get("/resources/{type}/{id}", accessLogs.ByResource)
			r.Get("/stats", accessLogs.Stats)
			r.Delete("/", accessLogs.Cleanup)
		})
	})

	r.Get("/health", health.New(logger, deps.DB).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
