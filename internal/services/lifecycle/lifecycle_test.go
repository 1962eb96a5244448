package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/control-financiero/internal/models"
)

type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) ListAccountsWithSubscription(ctx context.Context) ([]*models.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *MockDirectory) ListAdminAccountUIDs(ctx context.Context) (map[string]struct{}, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

func (m *MockDirectory) ResolveEmail(ctx context.Context, accountUID string) (string, error) {
	args := m.Called(ctx, accountUID)
	return args.String(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) CreateNotification(ctx context.Context, accountUID, title, message, kind string) error {
	args := m.Called(ctx, accountUID, title, message, kind)
	return args.Error(0)
}

func (m *MockNotifier) SendExpirationEmail(to, displayName string) error {
	args := m.Called(to, displayName)
	return args.Error(0)
}

func (m *MockNotifier) Suspend(ctx context.Context, accountUID string) (bool, error) {
	args := m.Called(ctx, accountUID)
	return args.Bool(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

var today = time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)

func newService(directory *MockDirectory, notifier *MockNotifier) *LifecycleService {
	s := NewLifecycleService(directory, notifier, newNoopLogger())
	s.now = func() time.Time { return today }
	return s
}

func accountEndingIn(uid string, days int) *models.Account {
	end := today.AddDate(0, 0, days)
	name := "Ana"
	return &models.Account{
		UID:                 uid,
		Username:            uid,
		FirstName:           &name,
		Role:                models.RoleUser,
		SubscriptionEndDate: &end,
	}
}

func TestRunDailyCheck_WarningThreeDaysBefore(t *testing.T) {
	directory := new(MockDirectory)
	notifier := new(MockNotifier)

	directory.On("ListAccountsWithSubscription", mock.Anything).
		Return([]*models.Account{accountEndingIn("acc-1", 3)}, nil).Once()
	directory.On("ListAdminAccountUIDs", mock.Anything).
		Return(map[string]struct{}{}, nil).Once()
	notifier.On("CreateNotification", mock.Anything, "acc-1",
		"Suscripción por vencer", mock.Anything, models.NotificationWarning).
		Return(nil).Once()

	scanned, err := newService(directory, notifier).RunDailyCheck(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, scanned)
	notifier.AssertNotCalled(t, "SendExpirationEmail", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Suspend", mock.Anything, mock.Anything)
	directory.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestRunDailyCheck_ExpirationDay(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		emailErr   error
		wantErr    bool
		wantEmails int
	}{
		{
			name:       "email resolves and is sent",
			email:      "ana@example.com",
			wantEmails: 1,
		},
		{
			name:       "email transport fails - notification survives",
			email:      "ana@example.com",
			emailErr:   errors.New("smtp down"),
			wantEmails: 1,
		},
		{
			name:       "no email on record - only notification",
			email:      "",
			wantEmails: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			directory := new(MockDirectory)
			notifier := new(MockNotifier)

			directory.On("ListAccountsWithSubscription", mock.Anything).
				Return([]*models.Account{accountEndingIn("acc-1", 0)}, nil).Once()
			directory.On("ListAdminAccountUIDs", mock.Anything).
				Return(map[string]struct{}{}, nil).Once()
			directory.On("ResolveEmail", mock.Anything, "acc-1").
				Return(tt.email, nil).Once()
			notifier.On("CreateNotification", mock.Anything, "acc-1",
				"Suscripción vencida", mock.Anything, models.NotificationError).
				Return(nil).Once()
			if tt.wantEmails > 0 {
				notifier.On("SendExpirationEmail", tt.email, mock.Anything).
					Return(tt.emailErr).Times(tt.wantEmails)
			}

			scanned, err := newService(directory, notifier).RunDailyCheck(context.Background())

			assert.NoError(t, err)
			assert.Equal(t, 1, scanned)
			if tt.wantEmails == 0 {
				notifier.AssertNotCalled(t, "SendExpirationEmail", mock.Anything, mock.Anything)
			}
			directory.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}

func TestRunDailyCheck_ExpirationEmailUsesDisplayName(t *testing.T) {
	directory := new(MockDirectory)
	notifier := new(MockNotifier)

	account := accountEndingIn("acc-1", 0)
	account.FirstName = nil
	account.LastName = nil

	directory.On("ListAccountsWithSubscription", mock.Anything).
		Return([]*models.Account{account}, nil).Once()
	directory.On("ListAdminAccountUIDs", mock.Anything).
		Return(map[string]struct{}{}, nil).Once()
	directory.On("ResolveEmail", mock.Anything, "acc-1").
		Return("ana@example.com", nil).Once()
	notifier.On("CreateNotification", mock.Anything, "acc-1",
		mock.Anything, mock.Anything, models.NotificationError).Return(nil).Once()
	notifier.On("SendExpirationEmail", "ana@example.com", "Usuario").Return(nil).Once()

	_, err := newService(directory, notifier).RunDailyCheck(context.Background())

	assert.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestRunDailyCheck_SuspensionFiveDaysAfter(t *testing.T) {
	t.Run("not suspended yet - flag flips and notification is created", func(t *testing.T) {
		directory := new(MockDirectory)
		notifier := new(MockNotifier)

		directory.On("ListAccountsWithSubscription", mock.Anything).
			Return([]*models.Account{accountEndingIn("acc-1", -5)}, nil).Once()
		directory.On("ListAdminAccountUIDs", mock.Anything).
			Return(map[string]struct{}{}, nil).Once()
		notifier.On("Suspend", mock.Anything, "acc-1").Return(true, nil).Once()
		notifier.On("CreateNotification", mock.Anything, "acc-1",
			"Cuenta suspendida", mock.Anything, models.NotificationError).
			Return(nil).Once()

		scanned, err := newService(directory, notifier).RunDailyCheck(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 1, scanned)
		directory.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("already suspended - idempotent no-op", func(t *testing.T) {
		directory := new(MockDirectory)
		notifier := new(MockNotifier)

		account := accountEndingIn("acc-1", -5)
		account.IsSuspended = true

		directory.On("ListAccountsWithSubscription", mock.Anything).
			Return([]*models.Account{account}, nil).Once()
		directory.On("ListAdminAccountUIDs", mock.Anything).
			Return(map[string]struct{}{}, nil).Once()
		notifier.On("Suspend", mock.Anything, "acc-1").Return(false, nil).Once()

		_, err := newService(directory, notifier).RunDailyCheck(context.Background())

		assert.NoError(t, err)
		notifier.AssertNotCalled(t, "CreateNotification",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		notifier.AssertExpectations(t)
	})
}

func TestRunDailyCheck_AdminAccountsExcluded(t *testing.T) {
	directory := new(MockDirectory)
	notifier := new(MockNotifier)

	directory.On("ListAccountsWithSubscription", mock.Anything).
		Return([]*models.Account{accountEndingIn("admin-1", 0)}, nil).Once()
	directory.On("ListAdminAccountUIDs", mock.Anything).
		Return(map[string]struct{}{"admin-1": {}}, nil).Once()

	scanned, err := newService(directory, notifier).RunDailyCheck(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, scanned)
	notifier.AssertNotCalled(t, "CreateNotification",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "SendExpirationEmail", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Suspend", mock.Anything, mock.Anything)
}

func TestRunDailyCheck_OtherDiffDaysAreNoOps(t *testing.T) {
	for _, days := range []int{2, 4, -4, -6, 30, -30} {
		directory := new(MockDirectory)
		notifier := new(MockNotifier)

		directory.On("ListAccountsWithSubscription", mock.Anything).
			Return([]*models.Account{accountEndingIn("acc-1", days)}, nil).Once()
		directory.On("ListAdminAccountUIDs", mock.Anything).
			Return(map[string]struct{}{}, nil).Once()

		scanned, err := newService(directory, notifier).RunDailyCheck(context.Background())

		assert.NoError(t, err, "days=%d", days)
		assert.Equal(t, 1, scanned, "days=%d", days)
		notifier.AssertNotCalled(t, "CreateNotification",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "SendExpirationEmail", mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "Suspend", mock.Anything, mock.Anything)
	}
}

func TestRunDailyCheck_DirectoryFailureAbortsRun(t *testing.T) {
	t.Run("accounts listing fails", func(t *testing.T) {
		directory := new(MockDirectory)
		notifier := new(MockNotifier)

		directory.On("ListAccountsWithSubscription", mock.Anything).
			Return(nil, errors.New("db down")).Once()

		_, err := newService(directory, notifier).RunDailyCheck(context.Background())

		assert.Error(t, err)
	})

	t.Run("admin listing fails", func(t *testing.T) {
		directory := new(MockDirectory)
		notifier := new(MockNotifier)

		directory.On("ListAccountsWithSubscription", mock.Anything).
			Return([]*models.Account{}, nil).Once()
		directory.On("ListAdminAccountUIDs", mock.Anything).
			Return(nil, errors.New("db down")).Once()

		_, err := newService(directory, notifier).RunDailyCheck(context.Background())

		assert.Error(t, err)
	})

	t.Run("email resolution fails", func(t *testing.T) {
		directory := new(MockDirectory)
		notifier := new(MockNotifier)

		directory.On("ListAccountsWithSubscription", mock.Anything).
			Return([]*models.Account{accountEndingIn("acc-1", 0)}, nil).Once()
		directory.On("ListAdminAccountUIDs", mock.Anything).
			Return(map[string]struct{}{}, nil).Once()
		directory.On("ResolveEmail", mock.Anything, "acc-1").
			Return("", errors.New("db down")).Once()
		notifier.On("CreateNotification", mock.Anything, "acc-1",
			mock.Anything, mock.Anything, models.NotificationError).Return(nil).Once()

		_, err := newService(directory, notifier).RunDailyCheck(context.Background())

		assert.Error(t, err)
	})
}

func TestRunDailyCheck_NotificationFailureDoesNotAbort(t *testing.T) {
	directory := new(MockDirectory)
	notifier := new(MockNotifier)

	directory.On("ListAccountsWithSubscription", mock.Anything).
		Return([]*models.Account{
			accountEndingIn("acc-1", 3),
			accountEndingIn("acc-2", 3),
		}, nil).Once()
	directory.On("ListAdminAccountUIDs", mock.Anything).
		Return(map[string]struct{}{}, nil).Once()
	notifier.On("CreateNotification", mock.Anything, "acc-1",
		mock.Anything, mock.Anything, models.NotificationWarning).
		Return(errors.New("insert failed")).Once()
	notifier.On("CreateNotification", mock.Anything, "acc-2",
		mock.Anything, mock.Anything, models.NotificationWarning).
		Return(nil).Once()

	scanned, err := newService(directory, notifier).RunDailyCheck(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, scanned)
	notifier.AssertExpectations(t)
}

func TestRunDailyCheck_NilEndDateSkipped(t *testing.T) {
	directory := new(MockDirectory)
	notifier := new(MockNotifier)

	account := &models.Account{UID: "acc-1", Role: models.RoleUser}

	directory.On("ListAccountsWithSubscription", mock.Anything).
		Return([]*models.Account{account}, nil).Once()
	directory.On("ListAdminAccountUIDs", mock.Anything).
		Return(map[string]struct{}{}, nil).Once()

	scanned, err := newService(directory, notifier).RunDailyCheck(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, scanned)
}
