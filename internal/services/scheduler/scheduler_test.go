package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/control-financiero/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) FindEventsDueTomorrow(ctx context.Context) ([]*models.EventReminder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.EventReminder), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRun_PublishesReminderPerEvent(t *testing.T) {
	repo := new(RepoMock)
	service := NewSchedulerService(repo, newNoopLogger())

	reminders := []*models.EventReminder{
		{Email: "ana@example.com", DisplayName: "Ana", Title: "Declaración mensual",
			DueDate: time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)},
		{Email: "luis@example.com", DisplayName: "Luis", Title: "Pago provisional ISR",
			DueDate: time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)},
	}
	repo.On("FindEventsDueTomorrow", mock.Anything).Return(reminders, nil).Once()

	var published []any
	service.publish = func(_ *amqp.Channel, exchange, routingKey string, message any) error {
		assert.Equal(t, "reminders", exchange)
		assert.Equal(t, "fiscal-event", routingKey)
		published = append(published, message)
		return nil
	}

	service.runFindEventsDueTomorrow(context.Background(), nil)

	assert.Len(t, published, 2)
	assert.Equal(t, reminders[0], published[0])
	repo.AssertExpectations(t)
}

func TestRun_RepositoryErrorDoesNotPublish(t *testing.T) {
	repo := new(RepoMock)
	service := NewSchedulerService(repo, newNoopLogger())

	repo.On("FindEventsDueTomorrow", mock.Anything).
		Return(nil, errors.New("db down")).Once()

	var published int
	service.publish = func(_ *amqp.Channel, _, _ string, _ any) error {
		published++
		return nil
	}

	service.runFindEventsDueTomorrow(context.Background(), nil)

	assert.Zero(t, published)
}

func TestRun_PublishFailureContinuesWithNextEvent(t *testing.T) {
	repo := new(RepoMock)
	service := NewSchedulerService(repo, newNoopLogger())

	reminders := []*models.EventReminder{
		{Email: "ana@example.com", Title: "Declaración mensual"},
		{Email: "luis@example.com", Title: "Pago provisional ISR"},
	}
	repo.On("FindEventsDueTomorrow", mock.Anything).Return(reminders, nil).Once()

	var attempts int
	service.publish = func(_ *amqp.Channel, _, _ string, _ any) error {
		attempts++
		if attempts == 1 {
			return errors.New("broker unavailable")
		}
		return nil
	}

	service.runFindEventsDueTomorrow(context.Background(), nil)

	assert.Equal(t, 2, attempts)
}
