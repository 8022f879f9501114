package marketplace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/talent-marketplace/internal/cache"
	"github.com/magabrotheeeer/talent-marketplace/internal/config"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/jwt"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/talent-marketplace/internal/migrations"
	"github.com/magabrotheeeer/talent-marketplace/internal/services/accesslog"
	"github.com/magabrotheeeer/talent-marketplace/internal/services/contactrequest"
	"github.com/magabrotheeeer/talent-marketplace/internal/services/notification"
	"github.com/magabrotheeeer/talent-marketplace/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App — HTTP-сервис маркетплейса.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *repository.Storage
	cache     *cache.Cache
	conn      *amqp.Connection
	ch        *amqp.Channel
	accessLog *accesslog.Service
}

// New поднимает зависимости, применяет миграции и собирает роутер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "marketplace.New"

	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}
	if version, dirty, verr := migrations.Version(db.DB, cfg.MigrationsPath); verr == nil {
		logger.Info("database schema ready", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	}
	if err = repository.CheckDatabaseReady(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		_ = cacheRedis.Close()
		_ = db.Close()
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		_ = cacheRedis.Close()
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	accessLog := accesslog.NewService(db, logger, cfg.AccessLog.WriteTimeout, cfg.AccessLog.RetentionDays)
	notifications := notification.NewService(
		db,
		cache.NewPreferencesCache(cacheRedis, cfg.PreferencesTTL),
		rabbitmq.NewPublisher(ch, rabbitmq.NotificationsExchange),
		logger,
	)
	contactRequests := contactrequest.NewService(db, notifications, accessLog, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg.HTTPServer, Deps{
		Tokens:          jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL),
		Audit:           accessLog,
		AccessLogs:      accessLog,
		ContactRequests: contactRequests,
		Notifications:   notifications,
		DB:              db.DB,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:    srv,
		logger:    logger,
		db:        db,
		cache:     cacheRedis,
		conn:      conn,
		ch:        ch,
		accessLog: accessLog,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
// Перед закрытием хранилища дожидается фоновых записей журнала доступа.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	a.accessLog.Wait()

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close redis", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
