// Package smtp предоставляет транспорт для отправки почтовых уведомлений:
// писем об истечении подписки и напоминаний о фискальных событиях.
package smtp

import "io"

// Client интерфейс SMTP-клиента, абстрагирующий net/smtp для тестов.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface интерфейс SMTP-транспорта.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
