package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/talent-marketplace/internal/lib/sl"
)

// DefaultPrefetch ограничивает число неподтвержденных сообщений на потребителя.
const DefaultPrefetch = 10

// ErrPermanent помечает ошибку обработки, после которой сообщение
// отбрасывается, а не возвращается в очередь.
var ErrPermanent = errors.New("permanent message failure")

// Handler обрабатывает тело одного сообщения.
type Handler func(ctx context.Context, body []byte) error

// Consumer читает очередь и обрабатывает сообщения параллельно,
// не больше prefetch одновременно.
type Consumer struct {
	ch       *amqp.Channel
	log      *slog.Logger
	queue    string
	prefetch int
	handler  Handler
	wg       sync.WaitGroup
}

// NewConsumer создает потребителя очереди. prefetch <= 0 заменяется на DefaultPrefetch.
func NewConsumer(ch *amqp.Channel, log *slog.Logger, queue string, prefetch int, handler Handler) *Consumer {
	if prefetch <= 0 {
		prefetch = DefaultPrefetch
	}
	return &Consumer{
		ch:       ch,
		log:      log.With(slog.String("queue", queue)),
		queue:    queue,
		prefetch: prefetch,
		handler:  handler,
	}
}

// Start подписывается на очередь и обрабатывает сообщения в фоне до отмены ctx.
//
// Успешно обработанное сообщение подтверждается. Ошибка с ErrPermanent
// отбрасывает сообщение, любая другая возвращает его в очередь.
func (c *Consumer) Start(ctx context.Context) error {
	const op = "rabbitmq.Consumer.Start"
	if err := c.ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	deliveries, err := c.ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sem := make(chan struct{}, c.prefetch)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case d, ok := <-deliveries:
				if !ok {
					c.log.Warn("delivery channel closed")
					return
				}
				sem <- struct{}{}
				c.wg.Add(1)
				go func() {
					defer func() {
						<-sem
						c.wg.Done()
					}()
					c.handle(ctx, d)
				}()
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// Wait дожидается завершения обработки уже полученных сообщений.
func (c *Consumer) Wait() {
	c.wg.Wait()
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	err := c.handler(context.WithoutCancel(ctx), d.Body)
	switch {
	case err == nil:
		if ackErr := d.Ack(false); ackErr != nil {
			c.log.Error("failed to ack message", sl.Err(ackErr))
		}
	case errors.Is(err, ErrPermanent):
		c.log.Warn("dropping message", sl.Err(err))
		if nackErr := d.Nack(false, false); nackErr != nil {
			c.log.Error("failed to nack message", sl.Err(nackErr))
		}
	default:
		c.log.Error("failed to handle message", slog.Bool("redelivered", d.Redelivered), sl.Err(err))
		if nackErr := d.Nack(false, true); nackErr != nil {
			c.log.Error("failed to nack message", sl.Err(nackErr))
		}
	}
}
