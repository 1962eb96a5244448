// Package services реализует бизнес-логику уведомлений пользователя.
package services

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/control-financiero/internal/models"
)

// ErrNotFound возвращается, когда уведомление не найдено.
var ErrNotFound = errors.New("notification not found")

// NotificationRepository описывает методы хранилища для работы с уведомлениями.
type NotificationRepository interface {
	ListNotifications(ctx context.Context, accountUID string, limit, offset int) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, accountUID string, id int) (int, error)
}

// NotificationService реализует операции над уведомлениями.
type NotificationService struct {
	repo NotificationRepository
}

// NewNotificationService создает новый сервис уведомлений.
func NewNotificationService(repo NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// List возвращает уведомления учетной записи, новые первыми.
func (s *NotificationService) List(ctx context.Context, accountUID string, limit, offset int) ([]*models.Notification, error) {
	return s.repo.ListNotifications(ctx, accountUID, limit, offset)
}

// MarkRead отмечает уведомление прочитанным.
func (s *NotificationService) MarkRead(ctx context.Context, accountUID string, id int) error {
	affected, err := s.repo.MarkNotificationRead(ctx, accountUID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
