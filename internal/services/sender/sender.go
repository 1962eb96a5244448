// Package services содержит сервис отправки электронной почты: письма об
// истечении подписки и напоминания о событиях фискального календаря.
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/control-financiero/internal/lib/sl"
	"github.com/magabrotheeeer/control-financiero/internal/lib/smtp"
	"github.com/magabrotheeeer/control-financiero/internal/models"
)

// ErrEmailDelivery маркирует ошибки доставки письма (транспорт или провайдер).
// Проверяется через errors.Is вызывающей стороной, чтобы отличить их от
// фатальных ошибок чтения данных.
var ErrEmailDelivery = errors.New("email delivery failed")

// SenderService отправляет письма через SMTP транспорт.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport smtp.TransportInterface) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendSubscriptionExpired отправляет письмо об истечении подписки.
func (s *SenderService) SendSubscriptionExpired(to, displayName string) error {
	subject := "Tu suscripción a Control Financiero ha vencido"
	bodyText := fmt.Sprintf("Hola, %s:\n\nTu suscripción a Control Financiero ha vencido el día de hoy.\n\nRenueva tu suscripción para seguir usando el servicio.",
		displayName)

	return s.Send([]string{to}, subject, bodyText)
}

// SendFiscalEventReminder обрабатывает сообщение очереди напоминаний
// и отправляет письмо о событии, наступающем завтра.
func (s *SenderService) SendFiscalEventReminder(body []byte) error {
	var message models.EventReminder
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject := "Recordatorio: " + message.Title
	bodyText := fmt.Sprintf("Hola, %s:\n\nMañana (%s) vence tu obligación fiscal: %s.\n\nRevisa tu calendario en Control Financiero.",
		message.DisplayName, message.DueDate.Format("02-01-2006"), message.Title)

	return s.Send([]string{message.Email}, subject, bodyText)
}

// Send отправляет письмо указанным получателям. Любая ошибка транспорта
// оборачивается в ErrEmailDelivery.
func (s *SenderService) Send(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return fmt.Errorf("%w: %s", ErrEmailDelivery, err)
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), sl.Err(err))
		return fmt.Errorf("%w: %s", ErrEmailDelivery, err)
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, sl.Err(err))
			return fmt.Errorf("%w: %s", ErrEmailDelivery, err)
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return fmt.Errorf("%w: %s", ErrEmailDelivery, err)
	}

	_, err = wc.Write([]byte(msg))
	if err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return fmt.Errorf("%w: %s", ErrEmailDelivery, err)
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return fmt.Errorf("%w: %s", ErrEmailDelivery, err)
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return fmt.Errorf("%w: %s", ErrEmailDelivery, err)
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
