package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/control-financiero/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) NextFolio(ctx context.Context, accountUID string, year int) (string, error) {
	args := m.Called(ctx, accountUID, year)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) CreateQuotation(ctx context.Context, q models.Quotation) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ReadQuotation(ctx context.Context, accountUID string, id int) (*models.Quotation, error) {
	args := m.Called(ctx, accountUID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quotation), args.Error(1)
}
func (m *RepoMock) ListQuotations(ctx context.Context, accountUID string, status *string, limit, offset int) ([]*models.Quotation, error) {
	args := m.Called(ctx, accountUID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quotation), args.Error(1)
}
func (m *RepoMock) UpdateQuotationStatus(ctx context.Context, accountUID string, id int, fromStatus, toStatus string) (int, error) {
	args := m.Called(ctx, accountUID, id, fromStatus, toStatus)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func validRequest() models.DummyQuotation {
	return models.DummyQuotation{
		ContactID:  3,
		VATRate:    "0.16",
		ValidUntil: "28-02-2025",
		Items: []models.DummyQuotationItem{
			{Description: "Consultoría", Quantity: "10", UnitPrice: "150.00"},
			{Description: "Soporte mensual", Quantity: "1", UnitPrice: "500.00"},
		},
	}
}

func TestCreate_ComputesTotalsAndFolio(t *testing.T) {
	repo := new(RepoMock)
	service := NewQuotationService(repo, newNoopLogger())

	repo.On("NextFolio", mock.Anything, "uid-1", mock.Anything).
		Return("COT-2025-0007", nil).Once()
	repo.On("CreateQuotation", mock.Anything, mock.MatchedBy(func(q models.Quotation) bool {
		return q.Folio == "COT-2025-0007" &&
			q.Status == models.QuotationDraft &&
			q.Subtotal.Equal(decimal.RequireFromString("2000")) &&
			q.VAT.Equal(decimal.RequireFromString("320")) &&
			q.Total.Equal(decimal.RequireFromString("2320")) &&
			len(q.Items) == 2 &&
			q.Items[0].UID != ""
	})).Return(12, nil).Once()

	id, folio, err := service.Create(context.Background(), "uid-1", validRequest())

	require.NoError(t, err)
	assert.Equal(t, 12, id)
	assert.Equal(t, "COT-2025-0007", folio)
	repo.AssertExpectations(t)
}

func TestCreate_EmptyRateDefaultsToStandardVAT(t *testing.T) {
	repo := new(RepoMock)
	service := NewQuotationService(repo, newNoopLogger())

	req := validRequest()
	req.VATRate = ""

	repo.On("NextFolio", mock.Anything, "uid-1", mock.Anything).
		Return("COT-2025-0008", nil).Once()
	repo.On("CreateQuotation", mock.Anything, mock.MatchedBy(func(q models.Quotation) bool {
		return q.Subtotal.Equal(decimal.RequireFromString("2000")) &&
			q.VAT.Equal(decimal.RequireFromString("320"))
	})).Return(13, nil).Once()

	_, _, err := service.Create(context.Background(), "uid-1", req)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreate_InvalidItems(t *testing.T) {
	service := NewQuotationService(new(RepoMock), newNoopLogger())

	tests := []struct {
		name   string
		mutate func(*models.DummyQuotation)
	}{
		{
			name:   "bad date",
			mutate: func(q *models.DummyQuotation) { q.ValidUntil = "2025-02-28" },
		},
		{
			name:   "bad quantity",
			mutate: func(q *models.DummyQuotation) { q.Items[0].Quantity = "mucho" },
		},
		{
			name:   "zero quantity",
			mutate: func(q *models.DummyQuotation) { q.Items[0].Quantity = "0" },
		},
		{
			name:   "negative unit price",
			mutate: func(q *models.DummyQuotation) { q.Items[1].UnitPrice = "-5" },
		},
		{
			name:   "bad vat rate",
			mutate: func(q *models.DummyQuotation) { q.VATRate = "dieciseis" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, _, err := service.Create(context.Background(), "uid-1", req)
			assert.Error(t, err)
		})
	}
}

func TestCreate_FolioError(t *testing.T) {
	repo := new(RepoMock)
	service := NewQuotationService(repo, newNoopLogger())

	repo.On("NextFolio", mock.Anything, "uid-1", mock.Anything).
		Return("", errors.New("db down")).Once()

	_, _, err := service.Create(context.Background(), "uid-1", validRequest())

	assert.Error(t, err)
	repo.AssertNotCalled(t, "CreateQuotation", mock.Anything, mock.Anything)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{name: "draft to sent", from: models.QuotationDraft, to: models.QuotationSent, allowed: true},
		{name: "sent to accepted", from: models.QuotationSent, to: models.QuotationAccepted, allowed: true},
		{name: "sent to rejected", from: models.QuotationSent, to: models.QuotationRejected, allowed: true},
		{name: "sent to expired", from: models.QuotationSent, to: models.QuotationExpired, allowed: true},
		{name: "draft to accepted skips sending", from: models.QuotationDraft, to: models.QuotationAccepted, allowed: false},
		{name: "accepted is final", from: models.QuotationAccepted, to: models.QuotationSent, allowed: false},
		{name: "rejected is final", from: models.QuotationRejected, to: models.QuotationSent, allowed: false},
		{name: "sent back to draft", from: models.QuotationSent, to: models.QuotationDraft, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			service := NewQuotationService(repo, newNoopLogger())

			if tt.allowed {
				repo.On("UpdateQuotationStatus", mock.Anything, "uid-1", 5, tt.from, tt.to).
					Return(1, nil).Once()
			}

			err := service.UpdateStatus(context.Background(), "uid-1", 5, tt.from, tt.to)

			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				repo.AssertNotCalled(t, "UpdateQuotationStatus",
					mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo := new(RepoMock)
	service := NewQuotationService(repo, newNoopLogger())

	repo.On("UpdateQuotationStatus", mock.Anything, "uid-1", 5,
		models.QuotationDraft, models.QuotationSent).Return(0, nil).Once()

	err := service.UpdateStatus(context.Background(), "uid-1", 5,
		models.QuotationDraft, models.QuotationSent)

	assert.ErrorIs(t, err, ErrNotFound)
}
