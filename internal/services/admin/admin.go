// Package services реализует операции администратора: просмотр учетных
// записей, управление сроком подписки и блокировкой.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/control-financiero/internal/lib/sl"
	"github.com/magabrotheeeer/control-financiero/internal/models"
)

// AdminRepository описывает методы хранилища, нужные администратору.
type AdminRepository interface {
	ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error)
	GetAccount(ctx context.Context, accountUID string) (*models.Account, error)
	UpdateSubscriptionEndDate(ctx context.Context, accountUID string, endDate *time.Time) error
	SuspendAccount(ctx context.Context, accountUID string) (bool, error)
	ReactivateAccount(ctx context.Context, accountUID string) error
}

// AdminService реализует операции администратора.
type AdminService struct {
	repo AdminRepository
	log  *slog.Logger
}

// NewAdminService создает новый сервис администратора.
func NewAdminService(repo AdminRepository, log *slog.Logger) *AdminService {
	return &AdminService{repo: repo, log: log}
}

// ListAccounts возвращает учетные записи с пагинацией.
func (s *AdminService) ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	return s.repo.ListAccounts(ctx, limit, offset)
}

// GetAccount возвращает учетную запись по UID.
func (s *AdminService) GetAccount(ctx context.Context, accountUID string) (*models.Account, error) {
	return s.repo.GetAccount(ctx, accountUID)
}

// UpdateSubscriptionEndDate устанавливает новый срок подписки.
// Пустая дата снимает учетную запись с контроля срока.
func (s *AdminService) UpdateSubscriptionEndDate(ctx context.Context, accountUID, endDate string) error {
	var parsed *time.Time
	if endDate != "" {
		d, err := time.Parse("02-01-2006", endDate)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
		parsed = &d
	}
	if err := s.repo.UpdateSubscriptionEndDate(ctx, accountUID, parsed); err != nil {
		return err
	}
	s.log.Info("subscription end date updated", sl.Account(accountUID))
	return nil
}

// Suspend блокирует учетную запись вручную. Возвращает true, если запись
// была активна и оказалась заблокирована этим вызовом.
func (s *AdminService) Suspend(ctx context.Context, accountUID string) (bool, error) {
	flipped, err := s.repo.SuspendAccount(ctx, accountUID)
	if err != nil {
		s.log.Error("failed to suspend account", sl.Account(accountUID), sl.Err(err))
		return false, err
	}
	if flipped {
		s.log.Info("account suspended by admin", sl.Account(accountUID))
	}
	return flipped, nil
}

// Reactivate снимает блокировку с учетной записи.
func (s *AdminService) Reactivate(ctx context.Context, accountUID string) error {
	if err := s.repo.ReactivateAccount(ctx, accountUID); err != nil {
		return err
	}
	s.log.Info("account reactivated", sl.Account(accountUID))
	return nil
}
