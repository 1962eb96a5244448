// Package services реализует планировщик напоминаний фискального календаря:
// раз в сутки находит события, наступающие завтра, и публикует напоминания
// в очередь для отправки по почте.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/control-financiero/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/control-financiero/internal/lib/sl"
	"github.com/magabrotheeeer/control-financiero/internal/models"
)

// EventRepository описывает методы хранилища, нужные планировщику.
type EventRepository interface {
	FindEventsDueTomorrow(ctx context.Context) ([]*models.EventReminder, error)
}

// Publisher публикует напоминание в очередь.
type Publisher func(ch *amqp.Channel, exchange, routingKey string, message any) error

// SchedulerService раз в сутки публикует напоминания о завтрашних событиях.
type SchedulerService struct {
	repo    EventRepository
	log     *slog.Logger
	publish Publisher
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo EventRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:    repo,
		log:     log,
		publish: rabbitmq.PublishMessage,
	}
}

// FindEventsDueTomorrow запускает цикл публикации напоминаний: один проход
// сразу и далее каждые 24 часа.
func (s *SchedulerService) FindEventsDueTomorrow(ctx context.Context, channel *amqp.Channel) {
	s.runFindEventsDueTomorrow(ctx, channel)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runFindEventsDueTomorrow(ctx, channel)
		}
	}
}

func (s *SchedulerService) runFindEventsDueTomorrow(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting service to find fiscal events due tomorrow")
	reminders, err := s.repo.FindEventsDueTomorrow(ctx)
	if err != nil {
		s.log.Error("failed to find events", sl.Err(err))
		return
	}
	if len(reminders) == 0 {
		s.log.Info("no upcoming fiscal events found")
		return
	}
	s.log.Info("found upcoming fiscal events", "count", len(reminders))
	for _, reminder := range reminders {
		err = s.publish(channel, "reminders", "fiscal-event", reminder)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
