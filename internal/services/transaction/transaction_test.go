package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/control-financiero/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateTransaction(ctx context.Context, tr models.Transaction) (int, error) {
	args := m.Called(ctx, tr)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListTransactions(ctx context.Context, accountUID string, limit, offset int) ([]*models.Transaction, error) {
	args := m.Called(ctx, accountUID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}
func (m *RepoMock) RemoveTransaction(ctx context.Context, accountUID string, id int) (int, error) {
	args := m.Called(ctx, accountUID, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) MonthlySummary(ctx context.Context, accountUID string, year, month int) (*models.MonthlySummary, error) {
	args := m.Called(ctx, accountUID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MonthlySummary), args.Error(1)
}
func (m *RepoMock) ReadContact(ctx context.Context, accountUID string, id int) (*models.Contact, error) {
	args := m.Called(ctx, accountUID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCreate_DerivesVATFromTotal(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	service := NewTransactionService(repo, cache, newNoopLogger())

	repo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tr models.Transaction) bool {
		return tr.Subtotal.Equal(decimal.RequireFromString("1000")) &&
			tr.VAT.Equal(decimal.RequireFromString("160")) &&
			tr.Total.Equal(decimal.RequireFromString("1160.00"))
	})).Return(7, nil).Once()
	cache.On("Invalidate", "summary:uid-1:2025-01").Return(nil).Once()

	id, withholding, err := service.Create(context.Background(), "uid-1", models.DummyTransaction{
		Kind:    models.TransactionIncome,
		Concept: "Venta de servicios",
		Total:   "1160.00",
		VATRate: "0.16",
		Date:    "15-01-2025",
	})

	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.Nil(t, withholding, "income transactions carry no withholding")
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
	repo.AssertNotCalled(t, "ReadContact", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_EmptyRateDefaultsToStandardVAT(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	service := NewTransactionService(repo, cache, newNoopLogger())

	repo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tr models.Transaction) bool {
		return tr.Subtotal.Equal(decimal.RequireFromString("1000")) &&
			tr.VAT.Equal(decimal.RequireFromString("160"))
	})).Return(8, nil).Once()
	cache.On("Invalidate", "summary:uid-1:2025-01").Return(nil).Once()

	_, _, err := service.Create(context.Background(), "uid-1", models.DummyTransaction{
		Kind:    models.TransactionIncome,
		Concept: "Venta de servicios",
		Total:   "1160.00",
		Date:    "15-01-2025",
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreate_ExpenseToPersonaFisicaReturnsWithholding(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	service := NewTransactionService(repo, cache, newNoopLogger())

	contactID := 3
	repo.On("ReadContact", mock.Anything, "uid-1", contactID).
		Return(&models.Contact{ID: contactID, PersonType: models.PersonFisica}, nil).Once()
	repo.On("CreateTransaction", mock.Anything, mock.Anything).Return(11, nil).Once()
	cache.On("Invalidate", "summary:uid-1:2025-01").Return(nil).Once()

	id, withholding, err := service.Create(context.Background(), "uid-1", models.DummyTransaction{
		ContactID: &contactID,
		Kind:      models.TransactionExpense,
		Concept:   "Honorarios de contador",
		Total:     "1160.00",
		VATRate:   "0.16",
		Date:      "15-01-2025",
	})

	require.NoError(t, err)
	assert.Equal(t, 11, id)
	require.NotNil(t, withholding)
	assert.True(t, withholding.ISR.Equal(decimal.RequireFromString("100")), "isr = %s", withholding.ISR)
	assert.True(t, withholding.VAT.Equal(decimal.RequireFromString("106.67")), "iva = %s", withholding.VAT)
	repo.AssertExpectations(t)
}

func TestCreate_ExpenseToPersonaMoralWithholdsNothing(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	service := NewTransactionService(repo, cache, newNoopLogger())

	contactID := 4
	repo.On("ReadContact", mock.Anything, "uid-1", contactID).
		Return(&models.Contact{ID: contactID, PersonType: models.PersonMoral}, nil).Once()
	repo.On("CreateTransaction", mock.Anything, mock.Anything).Return(12, nil).Once()
	cache.On("Invalidate", "summary:uid-1:2025-01").Return(nil).Once()

	_, withholding, err := service.Create(context.Background(), "uid-1", models.DummyTransaction{
		ContactID: &contactID,
		Kind:      models.TransactionExpense,
		Concept:   "Renta de oficina",
		Total:     "1160.00",
		VATRate:   "0.16",
		Date:      "15-01-2025",
	})

	require.NoError(t, err)
	require.NotNil(t, withholding)
	assert.True(t, withholding.ISR.IsZero())
	assert.True(t, withholding.VAT.IsZero())
}

func TestCreate_ContactReadErrorFailsCreate(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	service := NewTransactionService(repo, cache, newNoopLogger())

	contactID := 5
	repo.On("ReadContact", mock.Anything, "uid-1", contactID).
		Return(nil, errors.New("no rows")).Once()

	_, _, err := service.Create(context.Background(), "uid-1", models.DummyTransaction{
		ContactID: &contactID,
		Kind:      models.TransactionExpense,
		Concept:   "Honorarios",
		Total:     "1160.00",
		VATRate:   "0.16",
		Date:      "15-01-2025",
	})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
}

func TestCreate_InvalidInput(t *testing.T) {
	service := NewTransactionService(new(RepoMock), new(CacheMock), newNoopLogger())

	tests := []struct {
		name string
		req  models.DummyTransaction
	}{
		{
			name: "bad date",
			req:  models.DummyTransaction{Total: "100", VATRate: "0.16", Date: "2025-01-15"},
		},
		{
			name: "bad total",
			req:  models.DummyTransaction{Total: "abc", VATRate: "0.16", Date: "15-01-2025"},
		},
		{
			name: "negative total",
			req:  models.DummyTransaction{Total: "-5", VATRate: "0.16", Date: "15-01-2025"},
		},
		{
			name: "bad rate",
			req:  models.DummyTransaction{Total: "100", VATRate: "x", Date: "15-01-2025"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := service.Create(context.Background(), "uid-1", tt.req)
			assert.Error(t, err)
		})
	}
}

func TestSummary_CacheHit(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	service := NewTransactionService(repo, cache, newNoopLogger())

	cache.On("Get", "summary:uid-1:2025-01", mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(1).(*models.MonthlySummary)
			out.Year = 2025
			out.Month = 1
			out.Income = decimal.RequireFromString("500")
		}).
		Return(true, nil).Once()

	sum, err := service.Summary(context.Background(), "uid-1", 2025, 1)

	require.NoError(t, err)
	assert.True(t, sum.Income.Equal(decimal.RequireFromString("500")))
	repo.AssertNotCalled(t, "MonthlySummary", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSummary_CacheMissFallsBackToRepo(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	service := NewTransactionService(repo, cache, newNoopLogger())

	want := &models.MonthlySummary{Year: 2025, Month: 1, Income: decimal.RequireFromString("900")}

	cache.On("Get", "summary:uid-1:2025-01", mock.Anything).Return(false, nil).Once()
	repo.On("MonthlySummary", mock.Anything, "uid-1", 2025, 1).Return(want, nil).Once()
	cache.On("Set", "summary:uid-1:2025-01", want, mock.Anything).Return(nil).Once()

	sum, err := service.Summary(context.Background(), "uid-1", 2025, 1)

	require.NoError(t, err)
	assert.Equal(t, want, sum)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestSummary_RepoError(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	service := NewTransactionService(repo, cache, newNoopLogger())

	cache.On("Get", mock.Anything, mock.Anything).Return(false, nil).Once()
	repo.On("MonthlySummary", mock.Anything, "uid-1", 2025, 1).
		Return(nil, errors.New("db down")).Once()

	_, err := service.Summary(context.Background(), "uid-1", 2025, 1)

	assert.Error(t, err)
}
