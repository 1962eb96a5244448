// Package services реализует Notifier для ежедневной проверки подписок:
// запись внутренних уведомлений, отправка писем и установка флага блокировки.
package services

import (
	"context"
	"log/slog"
)

// NotificationRepository описывает методы хранилища, нужные для уведомлений
// и блокировки учетных записей.
type NotificationRepository interface {
	// CreateNotification сохраняет внутреннее уведомление и возвращает его ID.
	CreateNotification(ctx context.Context, accountUID, title, message, kind string) (int, error)
	// SuspendAccount устанавливает флаг блокировки, только если он сейчас снят.
	SuspendAccount(ctx context.Context, accountUID string) (bool, error)
}

// EmailSender описывает отправку письма об истечении подписки.
// Текст письма составляет сам отправитель, чтобы копия не расходилась.
type EmailSender interface {
	SendSubscriptionExpired(to, displayName string) error
}

// NotifierService связывает хранилище уведомлений и почтовый сервис.
type NotifierService struct {
	repo   NotificationRepository
	sender EmailSender
	log    *slog.Logger
}

// NewNotifierService создает новый экземпляр NotifierService.
func NewNotifierService(repo NotificationRepository, sender EmailSender, log *slog.Logger) *NotifierService {
	return &NotifierService{
		repo:   repo,
		sender: sender,
		log:    log,
	}
}

// CreateNotification сохраняет внутреннее уведомление.
func (n *NotifierService) CreateNotification(ctx context.Context, accountUID, title, message, kind string) error {
	_, err := n.repo.CreateNotification(ctx, accountUID, title, message, kind)
	return err
}

// SendExpirationEmail отправляет письмо об истечении подписки.
func (n *NotifierService) SendExpirationEmail(to, displayName string) error {
	return n.sender.SendSubscriptionExpired(to, displayName)
}

// Suspend устанавливает флаг блокировки условным обновлением.
// Возвращает true, если флаг был переключен этим вызовом.
func (n *NotifierService) Suspend(ctx context.Context, accountUID string) (bool, error) {
	return n.repo.SuspendAccount(ctx, accountUID)
}
