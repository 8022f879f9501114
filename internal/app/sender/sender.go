// Package sender собирает воркер рассылки писем: читает задания из очереди
// notifications.email и отправляет их через SMTP.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/talent-marketplace/internal/config"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/smtp"
	senderservice "github.com/magabrotheeeer/talent-marketplace/internal/services/sender"
)

// App — воркер рассылки.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.Service
	logger        *slog.Logger
	prefetch      int
}

// New подключается к брокеру и готовит SMTP-транспорт.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderservice.NewService(transport, logger),
		logger:        logger,
		prefetch:      cfg.SMTP.Workers,
	}, nil
}

// Run обрабатывает очередь до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	consumer := rabbitmq.NewConsumer(a.ch, a.logger, rabbitmq.EmailQueue, a.prefetch, a.senderService.HandleEmailJob)
	if err := consumer.Start(ctx); err != nil {
		a.logger.Error("failed to start email consumer", slog.String("queue", rabbitmq.EmailQueue), sl.Err(err))
		return err
	}
	a.logger.Info("email consumer started", slog.String("queue", rabbitmq.EmailQueue), slog.Int("prefetch", a.prefetch))

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")
	consumer.Wait()

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	return nil
}
