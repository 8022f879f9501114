// Package sender отправляет письма из очереди уведомлений через SMTP.
package sender

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/textproto"
	"strings"

	"github.com/magabrotheeeer/talent-marketplace/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/talent-marketplace/internal/lib/smtp"
	"github.com/magabrotheeeer/talent-marketplace/internal/metrics"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

// Service читает задания на письма и отправляет их.
type Service struct {
	transport smtp.Mailer
	log       *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(transport smtp.Mailer, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// HandleEmailJob обрабатывает тело сообщения из очереди. Неразборчивые
// задания, задания без адреса и письма, отклоненные сервером ответом 5xx,
// отбрасываются с rabbitmq.ErrPermanent. Остальные ошибки SMTP возвращаются
// как есть, и сообщение будет доставлено повторно.
func (s *Service) HandleEmailJob(_ context.Context, body []byte) error {
	const op = "sender.HandleEmailJob"
	var job models.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		metrics.EmailsSentTotal.WithLabelValues("dropped").Inc()
		return fmt.Errorf("%s: malformed job: %w", op, errors.Join(rabbitmq.ErrPermanent, err))
	}
	if strings.TrimSpace(job.Email) == "" {
		metrics.EmailsSentTotal.WithLabelValues("dropped").Inc()
		return fmt.Errorf("%s: job for user %q has no recipient: %w", op, job.UserID, rabbitmq.ErrPermanent)
	}

	if err := s.sendEmail([]string{job.Email}, job.Subject, job.Body); err != nil {
		if errors.Is(err, rabbitmq.ErrPermanent) {
			metrics.EmailsSentTotal.WithLabelValues("dropped").Inc()
		} else {
			metrics.EmailsSentTotal.WithLabelValues("error").Inc()
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	metrics.EmailsSentTotal.WithLabelValues("ok").Inc()
	s.log.Info("email sent",
		slog.String("user_id", job.UserID),
		slog.String("type", string(job.Type)),
		slog.String("notification_id", job.NotificationID))
	return nil
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	from := s.transport.From()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ", "),
		"Subject: " + sanitizeHeader(subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			s.log.Debug("smtp client close", sl.Err(err))
		}
	}()

	if err := client.Mail(from); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return rejected(err)
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return rejected(err)
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return rejected(err)
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return rejected(err)
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return rejected(err)
	}
	return rejected(client.Quit())
}

// rejected помечает окончательный отказ сервера (ответ 5xx) как
// rabbitmq.ErrPermanent. Остальные ошибки возвращаются без изменений.
func rejected(err error) error {
	var reply *textproto.Error
	if errors.As(err, &reply) && reply.Code >= 500 && reply.Code < 600 {
		return fmt.Errorf("rejected by server: %w", errors.Join(rabbitmq.ErrPermanent, err))
	}
	return err
}

// sanitizeHeader убирает переводы строк из значения заголовка.
func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
