package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Статусы котировки. Переходы между статусами проверяются в бизнес-логике:
// borrador -> enviada -> aceptada | rechazada | vencida.
const (
	QuotationDraft    = "borrador"
	QuotationSent     = "enviada"
	QuotationAccepted = "aceptada"
	QuotationRejected = "rechazada"
	QuotationExpired  = "vencida"
)

// Quotation представляет котировку с позициями.
// Номер котировки (Folio) генерируется хранилищем в формате COT-<год>-<номер>.
type Quotation struct {
	ID         int             // Идентификатор котировки
	AccountUID string          // Владелец записи
	ContactID  int             // Клиент, которому выставлена котировка
	Folio      string          // Номер, например COT-2025-0007
	Status     string          // Текущий статус
	Subtotal   decimal.Decimal // Сумма без НДС по всем позициям
	VAT        decimal.Decimal // Сумма НДС по всем позициям
	Total      decimal.Decimal // Итоговая сумма
	ValidUntil time.Time       // Срок действия котировки
	Items      []QuotationItem // Позиции котировки
	CreatedAt  time.Time       // Дата создания записи
}

// QuotationItem представляет одну позицию котировки.
type QuotationItem struct {
	UID         string          // Уникальный идентификатор позиции
	Description string          // Описание позиции
	Quantity    decimal.Decimal // Количество
	UnitPrice   decimal.Decimal // Цена за единицу без НДС
	Amount      decimal.Decimal // Сумма позиции без НДС
}

// DummyQuotation используется для приёма котировки из JSON-запроса.
// Пустая ставка НДС трактуется как стандартные 16%.
type DummyQuotation struct {
	ContactID  int                  `json:"contact_id" validate:"required,gt=0"`
	VATRate    string               `json:"vat_rate,omitempty" validate:"omitempty"`
	ValidUntil string               `json:"valid_until" validate:"required,datetime=02-01-2006"`
	Items      []DummyQuotationItem `json:"items" validate:"required,min=1,dive"`
}

// DummyQuotationItem используется для приёма позиции котировки из JSON-запроса.
type DummyQuotationItem struct {
	Description string `json:"description" validate:"required"`
	Quantity    string `json:"quantity" validate:"required"`
	UnitPrice   string `json:"unit_price" validate:"required"`
}
