// Package services реализует ежедневную проверку подписок: по числу целых
// дней до даты окончания подписки учетной записи выполняется ровно одно
// действие — предупреждение, уведомление об истечении с письмом или
// блокировка за неоплату.
//
// Все даты нормализуются к полуночи UTC. Проверка не хранит признак
// "уже уведомлен": ветка выбирается только по точному значению diffDays,
// поэтому планировщик должен запускать её ровно один раз в сутки.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/control-financiero/internal/lib/dateutil"
	"github.com/magabrotheeeer/control-financiero/internal/lib/sl"
	"github.com/magabrotheeeer/control-financiero/internal/models"
)

// Пороговые значения diffDays, при которых срабатывают переходы.
const (
	warnThreshold    = 3  // за три дня до окончания — предупреждение
	expireThreshold  = 0  // день окончания — уведомление и письмо
	suspendThreshold = -5 // пять дней после окончания — блокировка
)

// Directory описывает чтение учетных записей для проверки.
// Ошибка любого метода фатальна для всего запуска.
type Directory interface {
	// ListAccountsWithSubscription возвращает учетные записи с заданной датой окончания подписки.
	ListAccountsWithSubscription(ctx context.Context) ([]*models.Account, error)
	// ListAdminAccountUIDs возвращает множество UID администраторов (исключаются из проверки).
	ListAdminAccountUIDs(ctx context.Context) (map[string]struct{}, error)
	// ResolveEmail возвращает почту учетной записи; пустая строка — адрес не задан.
	ResolveEmail(ctx context.Context, accountUID string) (string, error)
}

// Notifier описывает побочные эффекты проверки.
type Notifier interface {
	// CreateNotification сохраняет внутреннее уведомление.
	CreateNotification(ctx context.Context, accountUID, title, message, kind string) error
	// SendExpirationEmail отправляет письмо об истечении подписки;
	// ошибка доставки не прерывает обработку.
	SendExpirationEmail(to, displayName string) error
	// Suspend устанавливает флаг блокировки условным обновлением,
	// возвращает true, если флаг был переключен этим вызовом.
	Suspend(ctx context.Context, accountUID string) (bool, error)
}

// LifecycleService выполняет ежедневную проверку подписок.
type LifecycleService struct {
	directory Directory
	notifier  Notifier
	log       *slog.Logger
	now       func() time.Time
}

// NewLifecycleService создает новый экземпляр LifecycleService.
func NewLifecycleService(directory Directory, notifier Notifier, log *slog.Logger) *LifecycleService {
	return &LifecycleService{
		directory: directory,
		notifier:  notifier,
		log:       log,
		now:       time.Now,
	}
}

// Run выполняет проверку сразу и далее раз в сутки до отмены контекста.
// Защита от перекрывающихся запусков лежит на внешнем планировщике.
func (s *LifecycleService) Run(ctx context.Context) {
	if _, err := s.RunDailyCheck(ctx); err != nil {
		s.log.Error("daily subscription check failed", sl.Err(err))
	}

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.RunDailyCheck(ctx); err != nil {
				s.log.Error("daily subscription check failed", sl.Err(err))
			}
		case <-ctx.Done():
			return
		}
	}
}

// RunDailyCheck однократно проверяет все учетные записи с управляемой
// подпиской и возвращает количество обработанных. Ошибки чтения справочника
// прерывают запуск; ошибки отправки писем и записи уведомлений логируются
// и не влияют на остальные учетные записи.
func (s *LifecycleService) RunDailyCheck(ctx context.Context) (int, error) {
	const op = "lifecycle.RunDailyCheck"
	today := dateutil.Midnight(s.now())

	s.log.Info("starting daily subscription check", slog.String("today", today.Format("02-01-2006")))

	accounts, err := s.directory.ListAccountsWithSubscription(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	admins, err := s.directory.ListAdminAccountUIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	scanned := 0
	for _, account := range accounts {
		if account.SubscriptionEndDate == nil {
			continue
		}
		if _, isAdmin := admins[account.UID]; isAdmin {
			continue
		}
		scanned++
		accountsScanned.Inc()
		if err := s.processAccount(ctx, account, today); err != nil {
			return scanned, fmt.Errorf("%s: %w", op, err)
		}
	}

	s.log.Info("daily subscription check finished", slog.Int("scanned", scanned))
	return scanned, nil
}

// processAccount применяет таблицу переходов к одной учетной записи.
// Ненулевая ошибка возвращается только при сбое чтения справочника.
func (s *LifecycleService) processAccount(ctx context.Context, account *models.Account, today time.Time) error {
	diffDays := dateutil.DaysUntil(*account.SubscriptionEndDate, today)

	switch diffDays {
	case warnThreshold:
		s.createNotification(ctx, account.UID,
			"Suscripción por vencer",
			"Tu suscripción vence en 3 días. Renueva para no perder el acceso.",
			models.NotificationWarning)
		warningsIssued.Inc()

	case expireThreshold:
		s.createNotification(ctx, account.UID,
			"Suscripción vencida",
			"Tu suscripción ha vencido el día de hoy.",
			models.NotificationError)
		expirationsIssued.Inc()

		email, err := s.directory.ResolveEmail(ctx, account.UID)
		if err != nil {
			return err
		}
		if email == "" {
			s.log.Warn("no email for expired account", sl.Account(account.UID))
			return nil
		}
		if err := s.notifier.SendExpirationEmail(email, account.DisplayName()); err != nil {
			s.log.Error("failed to send expiration email", sl.Account(account.UID), sl.Err(err))
		}

	case suspendThreshold:
		flipped, err := s.notifier.Suspend(ctx, account.UID)
		if err != nil {
			s.log.Error("failed to suspend account", sl.Account(account.UID), sl.Err(err))
			return nil
		}
		if !flipped {
			// уже заблокирована — повторный запуск ничего не меняет
			return nil
		}
		s.createNotification(ctx, account.UID,
			"Cuenta suspendida",
			"Tu cuenta ha sido suspendida por falta de pago.",
			models.NotificationError)
		suspensionsApplied.Inc()
	}

	return nil
}

func (s *LifecycleService) createNotification(ctx context.Context, accountUID, title, message, kind string) {
	if err := s.notifier.CreateNotification(ctx, accountUID, title, message, kind); err != nil {
		s.log.Error("failed to create notification", sl.Account(accountUID), sl.Err(err))
	}
}
