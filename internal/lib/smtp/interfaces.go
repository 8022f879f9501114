// Package smtp предоставляет SMTP транспорт со STARTTLS для отправки писем.
package smtp

import "io"

// Client — сессия с SMTP сервером, открытая Mailer.Connect.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// Mailer открывает аутентифицированную сессию и знает адрес отправителя.
type Mailer interface {
	Connect() (Client, error)
	From() string
}

var _ Mailer = (*Transport)(nil)
