// Package rabbitmq содержит помощники для работы с брокером: подключение,
// объявление обменника и очередей, публикация и потребление JSON сообщений.
package rabbitmq

import (
	"errors"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

const heartbeat = 10 * time.Second

// Connect подключается к брокеру по url. При неудаче делает до attempts
// попыток с паузой delay между ними.
func Connect(url string, attempts int, delay time.Duration) (*amqp.Connection, error) {
	const op = "rabbitmq.Connect"
	cfg := amqp.Config{Heartbeat: heartbeat, Locale: "en_US"}

	err := errors.New("no connection attempts")
	for i := range attempts {
		if i > 0 {
			time.Sleep(delay)
		}
		var conn *amqp.Connection
		if conn, err = amqp.DialConfig(url, cfg); err == nil {
			return conn, nil
		}
	}
	return nil, fmt.Errorf("%s: after %d attempts: %w", op, attempts, err)
}
