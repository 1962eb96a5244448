// Package tax реализует налоговую арифметику сервиса: выделение НДС (IVA)
// из суммы с включенным налогом и расчет удержаний по типу юридического лица.
// Все расчеты ведутся в decimal, округление до сентаво выполняется один раз
// на итоговых значениях.
package tax

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/control-financiero/internal/models"
)

var one = decimal.NewFromInt(1)

// DefaultVATRate — стандартная ставка IVA, 16%.
var DefaultVATRate = decimal.RequireFromString("0.16")

// Breakdown представляет разложение суммы с НДС на базу и налог.
type Breakdown struct {
	Subtotal decimal.Decimal // Сумма без налога
	VAT      decimal.Decimal // Сумма налога
}

// FromTotal выделяет из суммы с включенным НДС базу и налог:
// subtotal = total / (1 + rate), vat = total - subtotal.
// Сумма subtotal + vat всегда равна исходному total.
func FromTotal(total, rate decimal.Decimal) (Breakdown, error) {
	if rate.IsNegative() {
		return Breakdown{}, fmt.Errorf("tax.FromTotal: negative rate %s", rate)
	}
	subtotal := total.Div(one.Add(rate)).Round(2)
	return Breakdown{
		Subtotal: subtotal,
		VAT:      total.Sub(subtotal),
	}, nil
}

// WithholdingRates задает ставки удержаний для платежей физическим лицам.
// Для юридических лиц (persona moral) удержания не применяются.
type WithholdingRates struct {
	ISR         decimal.Decimal // Доля от суммы без НДС, удерживаемая как ISR
	VATFraction decimal.Decimal // Доля от суммы НДС, удерживаемая как retención de IVA
}

// DefaultWithholdingRates возвращает стандартные ставки удержаний:
// ISR 10% от базы и две трети IVA.
func DefaultWithholdingRates() WithholdingRates {
	return WithholdingRates{
		ISR:         decimal.RequireFromString("0.10"),
		VATFraction: decimal.NewFromInt(2).Div(decimal.NewFromInt(3)),
	}
}

// Withholding представляет суммы удержаний по одному платежу.
type Withholding struct {
	ISR decimal.Decimal // Удержание ISR
	VAT decimal.Decimal // Удержание IVA
}

// WithholdingFor считает удержания для платежа контакту указанного типа.
// Для persona moral обе суммы нулевые, для persona física применяются ставки rates.
func WithholdingFor(personType string, b Breakdown, rates WithholdingRates) (Withholding, error) {
	switch personType {
	case models.PersonMoral:
		return Withholding{ISR: decimal.Zero, VAT: decimal.Zero}, nil
	case models.PersonFisica:
		return Withholding{
			ISR: b.Subtotal.Mul(rates.ISR).Round(2),
			VAT: b.VAT.Mul(rates.VATFraction).Round(2),
		}, nil
	default:
		return Withholding{}, fmt.Errorf("tax.WithholdingFor: unknown person type %q", personType)
	}
}
