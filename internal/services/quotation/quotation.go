// Package services реализует бизнес-логику котировок: выдача номера,
// расчет сумм по позициям и контроль переходов между статусами.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/control-financiero/internal/lib/tax"
	"github.com/magabrotheeeer/control-financiero/internal/models"
)

// ErrInvalidTransition возвращается при попытке недопустимого перехода статуса.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrNotFound возвращается, когда котировка не найдена или переход не применился.
var ErrNotFound = errors.New("quotation not found")

// QuotationRepository описывает методы хранилища для работы с котировками.
type QuotationRepository interface {
	NextFolio(ctx context.Context, accountUID string, year int) (string, error)
	CreateQuotation(ctx context.Context, q models.Quotation) (int, error)
	ReadQuotation(ctx context.Context, accountUID string, id int) (*models.Quotation, error)
	ListQuotations(ctx context.Context, accountUID string, status *string, limit, offset int) ([]*models.Quotation, error)
	UpdateQuotationStatus(ctx context.Context, accountUID string, id int, fromStatus, toStatus string) (int, error)
}

// QuotationService реализует операции над котировками.
type QuotationService struct {
	repo QuotationRepository
	log  *slog.Logger
	now  func() time.Time
}

// transitions описывает допустимые переходы между статусами котировки.
var transitions = map[string][]string{
	models.QuotationDraft: {models.QuotationSent},
	models.QuotationSent:  {models.QuotationAccepted, models.QuotationRejected, models.QuotationExpired},
}

// NewQuotationService создает новый сервис котировок.
func NewQuotationService(repo QuotationRepository, log *slog.Logger) *QuotationService {
	return &QuotationService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// Create рассчитывает суммы котировки по позициям, выдает номер и сохраняет
// её в статусе borrador.
func (s *QuotationService) Create(ctx context.Context, accountUID string, req models.DummyQuotation) (int, string, error) {
	validUntil, err := time.Parse("02-01-2006", req.ValidUntil)
	if err != nil {
		return 0, "", fmt.Errorf("invalid valid_until: %w", err)
	}
	rate := tax.DefaultVATRate
	if req.VATRate != "" {
		rate, err = decimal.NewFromString(req.VATRate)
		if err != nil {
			return 0, "", fmt.Errorf("invalid vat rate: %w", err)
		}
	}

	subtotal := decimal.Zero
	items := make([]models.QuotationItem, 0, len(req.Items))
	for i, it := range req.Items {
		quantity, err := decimal.NewFromString(it.Quantity)
		if err != nil {
			return 0, "", fmt.Errorf("invalid quantity in item %d: %w", i+1, err)
		}
		unitPrice, err := decimal.NewFromString(it.UnitPrice)
		if err != nil {
			return 0, "", fmt.Errorf("invalid unit price in item %d: %w", i+1, err)
		}
		if !quantity.IsPositive() || unitPrice.IsNegative() {
			return 0, "", fmt.Errorf("invalid amounts in item %d", i+1)
		}
		amount := quantity.Mul(unitPrice).Round(2)
		subtotal = subtotal.Add(amount)
		items = append(items, models.QuotationItem{
			UID:         uuid.NewString(),
			Description: it.Description,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			Amount:      amount,
		})
	}

	vat := subtotal.Mul(rate).Round(2)
	year := s.now().Year()
	folio, err := s.repo.NextFolio(ctx, accountUID, year)
	if err != nil {
		return 0, "", fmt.Errorf("failed to issue folio: %w", err)
	}

	id, err := s.repo.CreateQuotation(ctx, models.Quotation{
		AccountUID: accountUID,
		ContactID:  req.ContactID,
		Folio:      folio,
		Status:     models.QuotationDraft,
		Subtotal:   subtotal,
		VAT:        vat,
		Total:      subtotal.Add(vat),
		ValidUntil: validUntil,
		Items:      items,
	})
	if err != nil {
		return 0, "", fmt.Errorf("failed to create quotation: %w", err)
	}
	return id, folio, nil
}

// Read возвращает котировку с позициями.
func (s *QuotationService) Read(ctx context.Context, accountUID string, id int) (*models.Quotation, error) {
	return s.repo.ReadQuotation(ctx, accountUID, id)
}

// List возвращает котировки учетной записи, опционально по статусу.
func (s *QuotationService) List(ctx context.Context, accountUID string, status *string, limit, offset int) ([]*models.Quotation, error) {
	return s.repo.ListQuotations(ctx, accountUID, status, limit, offset)
}

// UpdateStatus переводит котировку в новый статус, если переход допустим.
// Переводы применяются только из текущего ожидаемого статуса, поэтому
// параллельный запрос не применит один переход дважды.
func (s *QuotationService) UpdateStatus(ctx context.Context, accountUID string, id int, fromStatus, toStatus string) error {
	if !allowedTransition(fromStatus, toStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, fromStatus, toStatus)
	}
	affected, err := s.repo.UpdateQuotationStatus(ctx, accountUID, id, fromStatus, toStatus)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.log.Info("quotation status updated",
		slog.Int("quotation_id", id),
		slog.String("from", fromStatus),
		slog.String("to", toStatus))
	return nil
}

func allowedTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
