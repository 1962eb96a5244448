package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepo struct{ mock.Mock }

func (m *MockRepo) CreateNotification(ctx context.Context, accountUID, title, message, kind string) (int, error) {
	args := m.Called(ctx, accountUID, title, message, kind)
	return args.Int(0), args.Error(1)
}

func (m *MockRepo) SuspendAccount(ctx context.Context, accountUID string) (bool, error) {
	args := m.Called(ctx, accountUID)
	return args.Bool(0), args.Error(1)
}

type MockSender struct{ mock.Mock }

func (m *MockSender) SendSubscriptionExpired(to, displayName string) error {
	args := m.Called(to, displayName)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSendExpirationEmail_DelegatesToSender(t *testing.T) {
	repo := new(MockRepo)
	sender := new(MockSender)
	service := NewNotifierService(repo, sender, newNoopLogger())

	sender.On("SendSubscriptionExpired", "ana@example.com", "Ana Torres").Return(nil).Once()

	err := service.SendExpirationEmail("ana@example.com", "Ana Torres")

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestSendExpirationEmail_PropagatesDeliveryError(t *testing.T) {
	repo := new(MockRepo)
	sender := new(MockSender)
	service := NewNotifierService(repo, sender, newNoopLogger())

	wantErr := errors.New("smtp down")
	sender.On("SendSubscriptionExpired", "ana@example.com", "Ana Torres").Return(wantErr).Once()

	err := service.SendExpirationEmail("ana@example.com", "Ana Torres")

	assert.ErrorIs(t, err, wantErr)
}

func TestCreateNotification_DropsReturnedID(t *testing.T) {
	repo := new(MockRepo)
	sender := new(MockSender)
	service := NewNotifierService(repo, sender, newNoopLogger())

	repo.On("CreateNotification", mock.Anything, "acc-1",
		"Suscripción vencida", "Tu suscripción ha vencido el día de hoy.", "error").
		Return(42, nil).Once()

	err := service.CreateNotification(context.Background(), "acc-1",
		"Suscripción vencida", "Tu suscripción ha vencido el día de hoy.", "error")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
