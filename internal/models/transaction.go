package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Виды операций.
const (
	TransactionIncome  = "ingreso"
	TransactionExpense = "gasto"
)

// Transaction представляет финансовую операцию (доход или расход).
// Сумма Total хранится с включенным НДС; Subtotal и VAT вычисляются
// из нее по ставке VATRate при создании записи.
type Transaction struct {
	ID         int             // Идентификатор операции
	AccountUID string          // Владелец записи
	ContactID  *int            // Связанный контакт (опционально)
	Kind       string          // ingreso или gasto
	Concept    string          // Назначение операции
	Total      decimal.Decimal // Сумма с НДС
	Subtotal   decimal.Decimal // Сумма без НДС
	VAT        decimal.Decimal // Сумма НДС
	VATRate    decimal.Decimal // Ставка НДС, например 0.16
	Date       time.Time       // Дата операции
	CreatedAt  time.Time       // Дата создания записи
}

// DummyTransaction используется для приёма операции из JSON-запроса.
// Суммы приходят строками, чтобы не терять точность при декодировании.
// Пустая ставка НДС трактуется как стандартные 16%.
type DummyTransaction struct {
	ContactID *int   `json:"contact_id,omitempty" validate:"omitempty,gt=0"`
	Kind      string `json:"kind" validate:"required,oneof=ingreso gasto"`
	Concept   string `json:"concept" validate:"required"`
	Total     string `json:"total" validate:"required"`
	VATRate   string `json:"vat_rate,omitempty" validate:"omitempty"`
	Date      string `json:"date" validate:"required,datetime=02-01-2006"`
}

// MonthlySummary представляет месячную сводку по операциям пользователя.
type MonthlySummary struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	Income       decimal.Decimal `json:"income"`
	Expenses     decimal.Decimal `json:"expenses"`
	VATCollected decimal.Decimal `json:"vat_collected"`
	VATPaid      decimal.Decimal `json:"vat_paid"`
	Balance      decimal.Decimal `json:"balance"`
}
