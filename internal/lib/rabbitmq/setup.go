package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Обменники уведомлений: основной и для отброшенных сообщений.
const (
	NotificationsExchange = "notifications"
	DeadLetterExchange    = "notifications.dlx"
)

// Очередь и ключ маршрутизации для писем.
const (
	EmailQueue      = "notifications.email"
	EmailRoutingKey = "email"
)

// QueueConfig связывает очередь с ключом маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// DeadQueue возвращает имя очереди, куда попадают отброшенные сообщения.
func (q QueueConfig) DeadQueue() string {
	return q.QueueName + ".dead"
}

// GetNotificationQueues возвращает очереди, которые обслуживает отправщик уведомлений.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: EmailQueue, RoutingKey: EmailRoutingKey},
	}
}

// SetupChannel открывает канал и объявляет топологию уведомлений.
// Каждая очередь привязывается к notifications, а отклоненные без
// повтора сообщения уходят в парную очередь <name>.dead.
func SetupChannel(conn *amqp.Connection, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = declareTopology(ch, queues); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ch, nil
}

func declareTopology(ch *amqp.Channel, queues []QueueConfig) error {
	for _, exchange := range []string{NotificationsExchange, DeadLetterExchange} {
		if err := ch.ExchangeDeclare(exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare exchange %s: %w", exchange, err)
		}
	}

	for _, q := range queues {
		if err := declareBound(ch, q.DeadQueue(), q.RoutingKey, DeadLetterExchange, nil); err != nil {
			return err
		}
		args := amqp.Table{
			"x-dead-letter-exchange":    DeadLetterExchange,
			"x-dead-letter-routing-key": q.RoutingKey,
		}
		if err := declareBound(ch, q.QueueName, q.RoutingKey, NotificationsExchange, args); err != nil {
			return err
		}
	}
	return nil
}

func declareBound(ch *amqp.Channel, queue, key, exchange string, args amqp.Table) error {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, args); err != nil {
		return fmt.Errorf("declare %s: %w", queue, err)
	}
	if err := ch.QueueBind(queue, key, exchange, false, nil); err != nil {
		return fmt.Errorf("bind %s: %w", queue, err)
	}
	return nil
}
