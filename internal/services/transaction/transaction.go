// Package services содержит бизнес-логику финансовых операций: создание
// с выделением НДС из суммы, списки, удаление и месячные сводки с кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/control-financiero/internal/lib/tax"
	"github.com/magabrotheeeer/control-financiero/internal/models"
)

// TransactionRepository определяет методы для работы с операциями в хранилище.
type TransactionRepository interface {
	// CreateTransaction добавляет новую операцию и возвращает её ID.
	CreateTransaction(ctx context.Context, tr models.Transaction) (int, error)
	// ListTransactions возвращает операции пользователя с пагинацией.
	ListTransactions(ctx context.Context, accountUID string, limit, offset int) ([]*models.Transaction, error)
	// RemoveTransaction удаляет операцию и возвращает количество удалённых записей.
	RemoveTransaction(ctx context.Context, accountUID string, id int) (int, error)
	// MonthlySummary агрегирует операции за месяц.
	MonthlySummary(ctx context.Context, accountUID string, year, month int) (*models.MonthlySummary, error)
	// ReadContact возвращает контакт операции (нужен тип лица для удержаний).
	ReadContact(ctx context.Context, accountUID string, id int) (*models.Contact, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// TransactionService реализует бизнес-логику операций, включая кеширование сводок.
type TransactionService struct {
	repo  TransactionRepository
	cache Cache
	log   *slog.Logger
}

// NewTransactionService создает новый экземпляр TransactionService.
func NewTransactionService(repo TransactionRepository, cache Cache, log *slog.Logger) *TransactionService {
	return &TransactionService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func summaryCacheKey(accountUID string, year, month int) string {
	return fmt.Sprintf("summary:%s:%d-%02d", accountUID, year, month)
}

// Create создает операцию, выделяя из суммы с НДС базу и налог, и
// инвалидирует кеш сводки соответствующего месяца. Для расхода с привязанным
// контактом дополнительно возвращает суммы удержаний (ISR и retención de IVA)
// по типу юридического лица контакта.
func (s *TransactionService) Create(ctx context.Context, accountUID string, req models.DummyTransaction) (int, *tax.Withholding, error) {
	date, err := time.Parse("02-01-2006", req.Date)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid date: %w", err)
	}
	total, err := decimal.NewFromString(req.Total)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid total: %w", err)
	}
	if !total.IsPositive() {
		return 0, nil, fmt.Errorf("total must be positive")
	}
	rate := tax.DefaultVATRate
	if req.VATRate != "" {
		rate, err = decimal.NewFromString(req.VATRate)
		if err != nil {
			return 0, nil, fmt.Errorf("invalid vat rate: %w", err)
		}
	}
	breakdown, err := tax.FromTotal(total, rate)
	if err != nil {
		return 0, nil, err
	}

	var withholding *tax.Withholding
	if req.Kind == models.TransactionExpense && req.ContactID != nil {
		contact, err := s.repo.ReadContact(ctx, accountUID, *req.ContactID)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to read contact: %w", err)
		}
		w, err := tax.WithholdingFor(contact.PersonType, breakdown, tax.DefaultWithholdingRates())
		if err != nil {
			return 0, nil, err
		}
		withholding = &w
	}

	tr := models.Transaction{
		AccountUID: accountUID,
		ContactID:  req.ContactID,
		Kind:       req.Kind,
		Concept:    req.Concept,
		Total:      total,
		Subtotal:   breakdown.Subtotal,
		VAT:        breakdown.VAT,
		VATRate:    rate,
		Date:       date,
	}

	id, err := s.repo.CreateTransaction(ctx, tr)
	if err != nil {
		return 0, nil, err
	}

	key := summaryCacheKey(accountUID, date.Year(), int(date.Month()))
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate summary cache", "key", key)
	}
	return id, withholding, nil
}

// List возвращает операции пользователя с пагинацией.
func (s *TransactionService) List(ctx context.Context, accountUID string, limit, offset int) ([]*models.Transaction, error) {
	return s.repo.ListTransactions(ctx, accountUID, limit, offset)
}

// Remove удаляет операцию и сбрасывает кеш сводки её месяца.
// Возвращает количество удаленных записей.
func (s *TransactionService) Remove(ctx context.Context, accountUID string, id int, year, month int) (int, error) {
	count, err := s.repo.RemoveTransaction(ctx, accountUID, id)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		key := summaryCacheKey(accountUID, year, month)
		if err := s.cache.Invalidate(key); err != nil {
			s.log.Warn("failed to invalidate summary cache", "key", key)
		}
	}
	return count, nil
}

// Summary возвращает месячную сводку, сначала пробуя кеш.
func (s *TransactionService) Summary(ctx context.Context, accountUID string, year, month int) (*models.MonthlySummary, error) {
	key := summaryCacheKey(accountUID, year, month)

	var cached models.MonthlySummary
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("failed to read summary cache", "key", key)
	}
	if found {
		return &cached, nil
	}

	sum, err := s.repo.MonthlySummary(ctx, accountUID, year, month)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(key, sum, 10*time.Minute); err != nil {
		s.log.Warn("failed to write summary cache", "key", key)
	}
	return sum, nil
}
